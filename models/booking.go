package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking status values. checked_out and canceled are terminal.
const (
	BookingStatusCreated    = "created"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCanceled   = "canceled"
)

// Payment status / method values.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"

	PaymentMethodCash    = "cash"
	PaymentMethodCard    = "card"
	PaymentMethodEwallet = "ewallet"
	PaymentMethodNone    = "none"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID   uint   `gorm:"index;column:hotel_id" json:"hotelId"`
	HotelName string `gorm:"column:hotel_name;size:255" json:"hotel"`

	// Guest snapshot as entered at booking time.
	GuestName     string `gorm:"column:guest_name;size:255;index" json:"guest"`
	Salutation    string `gorm:"size:32" json:"salutation,omitempty"`
	FirstName     string `gorm:"column:first_name;size:150" json:"firstName,omitempty"`
	LastName      string `gorm:"column:last_name;size:150" json:"lastName,omitempty"`
	Gender        string `gorm:"size:32" json:"gender,omitempty"`
	BirthDate     string `gorm:"column:birth_date;size:32" json:"birth,omitempty"`
	Nationality   string `gorm:"size:100" json:"nationality,omitempty"`
	GuestEmail    string `gorm:"column:guest_email;size:150" json:"email,omitempty"`
	GuestPhone    string `gorm:"column:guest_phone;size:50" json:"phone,omitempty"`
	ArrivalWindow string `gorm:"column:arrival_window;size:100" json:"arrivalWindow,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	CheckinDate  *time.Time `gorm:"column:checkin_date;index" json:"checkin,omitempty"`
	CheckoutDate *time.Time `gorm:"column:checkout_date;index" json:"checkout,omitempty"`
	Nights       int        `gorm:"column:nights" json:"nights"`
	Adults       int        `gorm:"column:adults;default:1" json:"adults"`
	Children     int        `gorm:"column:children;default:0" json:"children"`

	Status string `gorm:"size:32;index" json:"status"`
	// Last status an event was emitted for; lifecycle events fire only when
	// the status actually changes.
	PreviousStatus string `gorm:"column:previous_status;size:32" json:"-"`

	// Immutable human-presentable reference, generated once at creation.
	BookingCode string `gorm:"column:booking_code;size:16;uniqueIndex" json:"code"`

	// Pricing snapshot, computed once at creation and never recomputed.
	Subtotal float64 `gorm:"column:subtotal" json:"subtotal"`
	Tax      float64 `gorm:"column:tax" json:"tax"`
	Total    float64 `gorm:"column:total" json:"total"`

	PaymentMethod string `gorm:"column:payment_method;size:32" json:"paymentMethod,omitempty"`
	PaymentStatus string `gorm:"column:payment_status;size:16" json:"payment,omitempty"`
	PaymentRef    string `gorm:"column:payment_ref;size:150" json:"paymentRef,omitempty"`

	// room id (decimal string) -> RFC3339 timestamp, stamped the first time
	// that room transitions into checked_in and never overwritten.
	RoomCheckins datatypes.JSON `gorm:"column:room_checkins" json:"roomCheckins,omitempty"`

	Rooms []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`
}
