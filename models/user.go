package models

import (
	"time"
)

// UserRole unterscheidet normale Besucher von Konferenz-Organisatoren.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleOrganizer UserRole = "organizer"
)

// User ist ein registrierter Benutzer der Plattform.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Email          string   `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string   `json:"-" gorm:"not null"`
	FullName       string   `json:"full_name"`
	Role           UserRole `json:"role" gorm:"default:user"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (User) TableName() string {
	return "users"
}
