package models

import (
	"gorm.io/gorm"
)

// BookingRoom is one allocated room on a booking. Number, type and price are
// copied from the Room at allocation time; later room edits do not change
// what the guest was quoted.
type BookingRoom struct {
	gorm.Model
	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	RoomNumber string  `gorm:"column:room_number;size:50" json:"room_number"`
	RoomType   string  `gorm:"column:room_type;size:100" json:"room_type"`
	Nights     int     `gorm:"column:nights;default:0" json:"nights"`
	Adults     int     `gorm:"column:adults;default:1" json:"adult"`
	Children   int     `gorm:"column:children;default:0" json:"child"`
	Price      float64 `gorm:"column:price" json:"price"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
	Room    Room    `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}
