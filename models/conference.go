package models

import (
	"strings"
	"time"
)

// Conference repräsentiert eine wissenschaftliche Konferenz.
// Eine Konferenz ist entweder von einem Organizer angelegt ("owned") oder
// wurde aus dem externen Feed übernommen; letztere behalten IsExternal=true
// dauerhaft als Herkunftsmarker.
type Conference struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string     `json:"name" gorm:"not null"`
	Acronym     string     `json:"acronym,omitempty" gorm:"index"`
	Publisher   string     `json:"publisher,omitempty" gorm:"index"` // ACM, IEEE, ...
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Topics      string     `json:"topics,omitempty" gorm:"type:text"`
	Speakers    string     `json:"speakers,omitempty" gorm:"type:text"` // Keynotes / Hauptsprecher

	// Kanonische URL; Dedup-Schlüssel über beide Quellen hinweg.
	// Der Unique-Index ist die Race-Absicherung der Materialisierung:
	// zwei gleichzeitige Promotions desselben Kandidaten konvergieren
	// auf genau eine Zeile.
	Website *string `json:"website,omitempty" gorm:"uniqueIndex;size:512"`

	// Semikolon-getrennte Liste ko-lokalisierter Events; in Views als Liste.
	ColocatedWith string `json:"-" gorm:"type:text"`

	// Nullable Referenz, kein Cascade: wird der Organizer gelöscht,
	// bleibt die Konferenz ohne Owner-Pointer bestehen.
	OrganizerID *uint `json:"organizer_id,omitempty" gorm:"index"`
	Organizer   *User `json:"-" gorm:"constraint:OnDelete:SET NULL"`

	IsExternal bool `json:"is_external"`

	Events    []Event    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Papers    []Paper    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Ratings   []Rating   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Interests []Interest `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments  []Comment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Conference) TableName() string {
	return "conferences"
}

// ColocatedList zerlegt das gespeicherte Delimiter-Feld in eine Liste.
func (c *Conference) ColocatedList() []string {
	if strings.TrimSpace(c.ColocatedWith) == "" {
		return []string{}
	}
	parts := strings.Split(c.ColocatedWith, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetColocatedList serialisiert die Liste in das Delimiter-Feld.
func (c *Conference) SetColocatedList(items []string) {
	c.ColocatedWith = strings.Join(items, ";")
}
