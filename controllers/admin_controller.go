package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type AdminController struct {
	Admins *services.AdminService
}

func NewAdminController(admins *services.AdminService) *AdminController {
	return &AdminController{Admins: admins}
}

type createAdminPayload struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   uint   `json:"role_id"`
}

func (ctl *AdminController) List(c *gin.Context) {
	admins, err := ctl.Admins.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

func (ctl *AdminController) Create(c *gin.Context) {
	var payload createAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}

	admin, err := ctl.Admins.Create(models.Admin{
		FullName: payload.FullName,
		Username: payload.Username,
	}, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if payload.RoleID != 0 {
		if err := ctl.Admins.AssignRole(admin.ID, payload.RoleID); err != nil {
			respondError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

type assignRolePayload struct {
	RoleID uint `json:"role_id" binding:"required"`
}

func (ctl *AdminController) AssignRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	var payload assignRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	if _, err := ctl.Admins.GetByID(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.Admins.AssignRole(uint(id), payload.RoleID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}

func (ctl *AdminController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := ctl.Admins.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}
