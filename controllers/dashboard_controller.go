package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

func (ctl *DashboardController) Metrics(c *gin.Context) {
	metrics, err := ctl.Dashboard.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, metrics)
}
