package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nichehotel-backend/models"
)

// ActivityService writes the audit trail. Log failures are reported to the
// caller but lifecycle operations treat them as non-fatal.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

func (s *ActivityService) Log(userID uint, action string, details map[string]any) error {
	var raw datatypes.JSON
	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode activity details: %w", err)
		}
		raw = datatypes.JSON(b)
	}
	entry := models.ActivityLog{
		UserID:  userID,
		Action:  action,
		Details: raw,
	}
	return s.DB.Create(&entry).Error
}

func (s *ActivityService) List(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.ActivityLog
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
