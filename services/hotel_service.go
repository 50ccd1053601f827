package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nichehotel-backend/models"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

func (s *HotelService) Create(hotel models.Hotel) (models.Hotel, error) {
	if strings.TrimSpace(hotel.Name) == "" {
		ve := NewValidationError()
		ve.Add("name", "name is required")
		return hotel, ve
	}
	err := s.DB.Create(&hotel).Error
	return hotel, err
}

// BulkCreate takes one hotel per line, "Name | Location", location optional.
// Blank lines are skipped; a line with an empty name fails the whole batch.
func (s *HotelService) BulkCreate(lines string) ([]models.Hotel, error) {
	var hotels []models.Hotel
	for i, line := range strings.Split(lines, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, location := line, ""
		if idx := strings.Index(line, "|"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			location = strings.TrimSpace(line[idx+1:])
		}
		if name == "" {
			ve := NewValidationError()
			ve.Add("lines", fmt.Sprintf("line %d has no hotel name", i+1))
			return nil, ve
		}
		hotels = append(hotels, models.Hotel{Name: name, Location: location})
	}
	if len(hotels) == 0 {
		ve := NewValidationError()
		ve.Add("lines", "no hotels given")
		return nil, ve
	}
	if err := s.DB.Create(&hotels).Error; err != nil {
		return nil, fmt.Errorf("bulk create hotels: %w", err)
	}
	return hotels, nil
}

func (s *HotelService) GetAll() ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := s.DB.Order("name ASC").Find(&hotels).Error
	return hotels, err
}

func (s *HotelService) GetByID(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel, fmt.Errorf("hotel %d: %w", id, ErrNotFound)
		}
		return hotel, err
	}
	return hotel, nil
}

func (s *HotelService) Update(hotel models.Hotel) error {
	res := s.DB.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Updates(hotel)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("hotel %d: %w", hotel.ID, ErrNotFound)
	}
	return nil
}

func (s *HotelService) Delete(id uint) error {
	return s.DB.Delete(&models.Hotel{}, id).Error
}
