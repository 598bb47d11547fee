package models

import (
	"time"
)

// Comment ist ein Benutzerkommentar zu einer Konferenz.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserID       uint `json:"user_id" gorm:"not null;index"`
	User         User `json:"-" gorm:"foreignKey:UserID"`
	ConferenceID uint `json:"conference_id" gorm:"not null;index"`

	Content string `json:"content" gorm:"type:text;not null"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Comment) TableName() string {
	return "comments"
}
