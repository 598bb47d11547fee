package models

import (
	"time"
)

// Rating ist die Bewertung eines Benutzers für eine Konferenz.
// Pro (user, conference) existiert höchstens eine Zeile; eine zweite Abgabe
// aktualisiert die bestehende Bewertung.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_conf"`
	ConferenceID uint `json:"conference_id" gorm:"not null;uniqueIndex:idx_ratings_user_conf;index"`

	Value       float64  `json:"rating" gorm:"column:rating;not null"`
	Credibility *float64 `json:"credibility,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Rating) TableName() string {
	return "ratings"
}
