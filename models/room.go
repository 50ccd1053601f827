package models

import (
	"gorm.io/gorm"
)

// Room status values. Status is owned by the booking lifecycle: admin edits
// to price/description never touch it.
const (
	RoomStatusAvailable = "available"
	RoomStatusBooked    = "booked"
	RoomStatusCheckedIn = "checked_in"
)

type Room struct {
	gorm.Model

	HotelID    uint   `json:"hotelId" gorm:"column:hotel_id;index"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;type:varchar(50)"`

	// Free-text type label, stored lowercase. Matching against the room-type
	// catalog is done on this normalized string, not a foreign key; price and
	// description may diverge from the catalog defaults after catalog edits.
	RoomType    string  `json:"roomType" gorm:"column:room_type;size:100;index"`
	Status      string  `json:"status" gorm:"size:32;default:available;index"`
	Price       float64 `json:"price"`
	Description string  `json:"description" gorm:"type:text"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
