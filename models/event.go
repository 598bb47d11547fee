package models

import (
	"time"
)

// Event ist ein Programmpunkt innerhalb einer Konferenz
// (main, workshop, tutorial, competition, summer_school, ...).
type Event struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ConferenceID  uint  `json:"conference_id" gorm:"not null;index"`
	ParentEventID *uint `json:"parent_event_id,omitempty"`

	Title       string     `json:"title" gorm:"not null"`
	Type        string     `json:"type" gorm:"not null"`
	Date        *time.Time `json:"date,omitempty"`
	Time        string     `json:"time,omitempty"` // "HH:MM" oder Bereich, bewusst als String
	Speakers    string     `json:"speakers,omitempty" gorm:"type:text"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Event) TableName() string {
	return "events"
}
