package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nichehotel-backend/models"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func (s *AdminService) Create(admin models.Admin, password string) (models.Admin, error) {
	ve := NewValidationError()
	if strings.TrimSpace(admin.Username) == "" {
		ve.Add("username", "username is required")
	}
	if len(password) < 8 {
		ve.Add("password", "must be at least 8 characters")
	}
	if err := ve.ErrOrNil(); err != nil {
		return admin, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return admin, fmt.Errorf("hash password: %w", err)
	}
	admin.Password = string(hash)

	if err := s.DB.Create(&admin).Error; err != nil {
		if isDuplicateKey(err) {
			ve := NewValidationError()
			ve.Add("username", "already taken")
			return admin, ve
		}
		return admin, err
	}
	return admin, nil
}

func (s *AdminService) GetAll() ([]models.Admin, error) {
	var admins []models.Admin
	err := s.DB.Find(&admins).Error
	return admins, err
}

func (s *AdminService) GetByID(id uint) (models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return admin, fmt.Errorf("admin %d: %w", id, ErrNotFound)
		}
		return admin, err
	}
	return admin, nil
}

func (s *AdminService) AssignRole(adminID, roleID uint) error {
	member := models.RoleMember{RoleID: roleID, AdminID: adminID}
	if err := s.DB.Create(&member).Error; err != nil {
		if isDuplicateKey(err) {
			return nil
		}
		return err
	}
	return nil
}

func (s *AdminService) Delete(id uint) error {
	return s.DB.Delete(&models.Admin{}, id).Error
}
