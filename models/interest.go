package models

import (
	"time"
)

// Interest markiert "Benutzer interessiert sich für Konferenz".
// Reiner Presence-Marker; doppeltes Markieren ist ein Benutzerfehler,
// kein stilles No-Op.
type Interest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_interests_user_conf"`
	ConferenceID uint `json:"conference_id" gorm:"not null;uniqueIndex:idx_interests_user_conf;index"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Interest) TableName() string {
	return "interests"
}
