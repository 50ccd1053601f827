package models

import (
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model

	Name     string `json:"name" gorm:"size:255"`
	Location string `json:"location" gorm:"type:text"`

	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}
