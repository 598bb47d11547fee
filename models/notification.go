package models

import (
	"time"
)

// Notification ist eine leichtgewichtige Benachrichtigung an genau einen
// Empfänger. Append-only bis auf das Read-Flag.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserID       uint  `json:"user_id" gorm:"not null;index"`
	ConferenceID *uint `json:"conference_id,omitempty"`

	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"type:text"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Notification) TableName() string {
	return "notifications"
}
