package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the audit trail row written on booking create, status
// change and payment update.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"column:user_id;index;default:0" json:"user_id"`
	Action    string         `gorm:"size:191;index" json:"action"`
	Details   datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
