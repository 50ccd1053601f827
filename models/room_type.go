package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is the shared catalog entry. Rooms reference it only through the
// normalized slug, so catalog edits do not rewrite existing rooms.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string         `json:"name" gorm:"size:150"`
	Slug         string         `json:"slug" gorm:"size:150;uniqueIndex"`
	DefaultPrice float64        `json:"price" gorm:"column:default_price"`
	Description  string         `json:"description" gorm:"type:text"`
	Amenities    datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
	Images       datatypes.JSON `json:"images,omitempty" gorm:"column:images"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
