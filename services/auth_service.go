package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nichehotel-backend/models"
	"nichehotel-backend/utils"
)

// Capabilities gate the admin API. They are granted to roles, not directly
// to admins.
const (
	CapEditBookings   = "edit_bookings"
	CapViewLogs       = "view_logs"
	CapManageSettings = "manage_settings"
)

// CapabilitySet is the resolved set of capabilities for one admin.
type CapabilitySet map[string]struct{}

func (c CapabilitySet) Can(capability string) bool {
	_, ok := c[capability]
	return ok
}

func (c CapabilitySet) List() []string {
	out := make([]string, 0, len(c))
	for capability := range c {
		out = append(out, capability)
	}
	return out
}

// ErrUnauthorized covers bad credentials and unknown tokens. The message is
// deliberately the same for both so probes learn nothing.
var ErrUnauthorized = errors.New("unauthorized")

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login verifies credentials and issues a fresh bearer token, invalidating
// any previous one.
func (s *AuthService) Login(username, password string) (*models.Admin, string, error) {
	var admin models.Admin
	err := s.DB.First(&admin, "username = ?", strings.TrimSpace(username)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrUnauthorized
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	if err := s.DB.Model(&admin).Update("api_token", token).Error; err != nil {
		return nil, "", fmt.Errorf("store token: %w", err)
	}
	admin.APIToken = &token
	return &admin, token, nil
}

// Resolve maps a bearer token back to its admin and their capability set.
func (s *AuthService) Resolve(token string) (*models.Admin, CapabilitySet, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, ErrUnauthorized
	}

	var admin models.Admin
	err := s.DB.First(&admin, "api_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}

	caps, err := s.CapabilitiesFor(admin.ID)
	if err != nil {
		return nil, nil, err
	}
	return &admin, caps, nil
}

// CapabilitiesFor collects the union of permissions across the admin's
// roles.
func (s *AuthService) CapabilitiesFor(adminID uint) (CapabilitySet, error) {
	var permissions []string
	err := s.DB.Model(&models.RolePermission{}).
		Joins("JOIN role_members ON role_members.role_id = role_permissions.role_id").
		Where("role_members.admin_id = ?", adminID).
		Pluck("role_permissions.permission", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	caps := make(CapabilitySet, len(permissions))
	for _, p := range permissions {
		caps[p] = struct{}{}
	}
	return caps, nil
}
