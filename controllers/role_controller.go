package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type RoleController struct {
	DB *gorm.DB
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db}
}

// knownCapabilities is what the role editor offers.
var knownCapabilities = []string{
	services.CapEditBookings,
	services.CapViewLogs,
	services.CapManageSettings,
}

func validCapability(name string) bool {
	for _, capability := range knownCapabilities {
		if capability == name {
			return true
		}
	}
	return false
}

func (ctl *RoleController) List(c *gin.Context) {
	var roles []models.Role
	if err := ctl.DB.Preload("Permissions").Preload("Members").Find(&roles).Error; err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roles": roles, "capabilities": knownCapabilities})
}

type rolePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (p rolePayload) validate() error {
	ve := services.NewValidationError()
	if strings.TrimSpace(p.Name) == "" {
		ve.Add("name", "name is required")
	}
	for _, perm := range p.Permissions {
		if !validCapability(perm) {
			ve.Add("permissions", "unknown capability "+perm)
		}
	}
	return ve.ErrOrNil()
}

func (ctl *RoleController) Create(c *gin.Context) {
	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := payload.validate(); err != nil {
		respondError(c, err)
		return
	}

	role := models.Role{
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
	}
	for _, perm := range payload.Permissions {
		role.Permissions = append(role.Permissions, models.RolePermission{Permission: perm})
	}

	if err := ctl.DB.Create(&role).Error; err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, role)
}

// UpdatePermissions replaces a role's capability grants wholesale.
func (ctl *RoleController) UpdatePermissions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	for _, perm := range payload.Permissions {
		if !validCapability(perm) {
			ve := services.NewValidationError()
			ve.Add("permissions", "unknown capability "+perm)
			respondError(c, ve)
			return
		}
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		for _, perm := range payload.Permissions {
			grant := models.RolePermission{RoleID: role.ID, Permission: perm}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		respondError(c, txErr)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}

func (ctl *RoleController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.RoleMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
	if txErr != nil {
		respondError(c, txErr)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}
