package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
)

const (
	ctxAdminKey = "currentAdmin"
	ctxCapsKey  = "currentCapabilities"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "error.unauthorized", "message": "unauthorized"},
	})
}

// Authenticate resolves the bearer token into an admin and their capability
// set and stores both on the context.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c)
			return
		}

		admin, caps, err := auth.Resolve(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxAdminKey, admin)
		c.Set(ctxCapsKey, caps)
		c.Next()
	}
}

// RequireCapability gates a route group on one capability. Must run after
// Authenticate.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, caps, ok := CurrentAdmin(c)
		if !ok || !caps.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "error.forbidden", "message": "missing capability " + capability},
			})
			return
		}
		c.Next()
	}
}

// CurrentAdmin returns the authenticated admin and capabilities, if any.
func CurrentAdmin(c *gin.Context) (*models.Admin, services.CapabilitySet, bool) {
	av, ok := c.Get(ctxAdminKey)
	if !ok {
		return nil, nil, false
	}
	admin, ok := av.(*models.Admin)
	if !ok {
		return nil, nil, false
	}
	cv, ok := c.Get(ctxCapsKey)
	if !ok {
		return nil, nil, false
	}
	caps, ok := cv.(services.CapabilitySet)
	if !ok {
		return nil, nil, false
	}
	return admin, caps, true
}

// CurrentAdminID is zero for unauthenticated (public) requests.
func CurrentAdminID(c *gin.Context) uint {
	if admin, _, ok := CurrentAdmin(c); ok {
		return admin.ID
	}
	return 0
}
