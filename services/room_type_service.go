package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nichehotel-backend/models"
	"nichehotel-backend/utils"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(rt models.RoomType) (models.RoomType, error) {
	if strings.TrimSpace(rt.Name) == "" {
		ve := NewValidationError()
		ve.Add("name", "name is required")
		return rt, ve
	}
	rt.Slug = utils.Slugify(rt.Name)
	err := s.DB.Create(&rt).Error
	if err != nil && isDuplicateKey(err) {
		ve := NewValidationError()
		ve.Add("name", "a room type with this name already exists")
		return rt, ve
	}
	return rt, err
}

func (s *RoomTypeService) GetAll() ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Order("name ASC").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) GetByID(id uint) (models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rt, fmt.Errorf("room type %d: %w", id, ErrNotFound)
		}
		return rt, err
	}
	return rt, nil
}

// Lookup resolves a catalog entry for the booking form by slug first, then
// by name. Rooms carry free-text type labels, so a miss here is not an
// error for booking itself, only for detail display.
func (s *RoomTypeService) Lookup(slugOrName string) (models.RoomType, error) {
	var rt models.RoomType
	key := strings.TrimSpace(slugOrName)
	err := s.DB.
		Where("slug = ? OR LOWER(name) = ?", utils.Slugify(key), strings.ToLower(key)).
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rt, fmt.Errorf("room type %q: %w", slugOrName, ErrNotFound)
	}
	return rt, err
}

func (s *RoomTypeService) Update(rt models.RoomType) error {
	if rt.Name != "" {
		rt.Slug = utils.Slugify(rt.Name)
	}
	res := s.DB.Model(&models.RoomType{}).Where("id = ?", rt.ID).Updates(rt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room type %d: %w", rt.ID, ErrNotFound)
	}
	return nil
}

func (s *RoomTypeService) Delete(id uint) error {
	return s.DB.Delete(&models.RoomType{}, id).Error
}
