package models

import "time"

// Setting is a simple name/value row backing webhook targets, booking-form
// and payment configuration.
type Setting struct {
	Name      string    `gorm:"primaryKey;size:150" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
