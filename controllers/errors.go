package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

// respondError maps service errors onto the API's error envelope. Unknown
// errors become opaque 500s; details are only attached for validation
// failures, where they are field messages rather than internals.
func respondError(c *gin.Context, err error) {
	if ve := services.IsValidationError(err); ve != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", ve.Error(), ve.Fields())
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", err.Error(), nil)
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "unauthorized", nil)
	case errors.Is(err, services.ErrInsufficientInventory):
		utils.JSONError(c, http.StatusConflict, "error.noAvailability", err.Error(), nil)
	case errors.Is(err, services.ErrExternalService):
		utils.JSONError(c, http.StatusBadGateway, "error.upstream", err.Error(), nil)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal error", nil)
	}
}

func respondInvalidPayload(c *gin.Context) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid request payload", nil)
}
