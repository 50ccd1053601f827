package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/middleware"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (ctl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "username and password required", nil)
		return
	}

	admin, token, err := ctl.Auth.Login(payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	caps, err := ctl.Auth.CapabilitiesFor(admin.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":        token,
		"admin":        admin,
		"capabilities": caps.List(),
	})
}

// Whoami reflects the authenticated admin and their capabilities back, for
// frontends that need to decide what to render.
func (ctl *AuthController) Whoami(c *gin.Context) {
	admin, caps, ok := middleware.CurrentAdmin(c)
	if !ok {
		respondError(c, services.ErrUnauthorized)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"admin":        admin,
		"capabilities": caps.List(),
	})
}
