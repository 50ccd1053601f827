package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type ActivityController struct {
	Activity *services.ActivityService
}

func NewActivityController(activity *services.ActivityService) *ActivityController {
	return &ActivityController{Activity: activity}
}

func (ctl *ActivityController) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	entries, err := ctl.Activity.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}
