package models

import (
	"time"
)

// Paper repräsentiert ein Konferenz-Paper. Lokal eingereichte Paper haben nur
// Titel/Autoren; importierte Paper tragen die bibliografischen Metadaten aus
// dem Semantic-Scholar-Batch-Import.
type Paper struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ConferenceID uint  `json:"conference_id" gorm:"not null;index"`
	EventID      *uint `json:"event_id,omitempty" gorm:"index"`

	LocalTitle   string `json:"local_title,omitempty" gorm:"type:text"`
	LocalAuthors string `json:"local_authors,omitempty" gorm:"type:text"`

	S2PaperID        string `json:"s2_paper_id,omitempty" gorm:"index"`
	DOI              string `json:"doi,omitempty" gorm:"column:doi;index"`
	Title            string `json:"title,omitempty" gorm:"type:text"`
	Abstract         string `json:"abstract,omitempty" gorm:"type:text"`
	Venue            string `json:"venue,omitempty"`
	Year             *int   `json:"year,omitempty"`
	CitationCount    *int   `json:"citation_count,omitempty"`
	OpenAccessPDFURL string `json:"open_access_pdf_url,omitempty"`
	FieldsOfStudy    string `json:"fields_of_study,omitempty" gorm:"type:text"` // kommagetrennt
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Paper) TableName() string {
	return "papers"
}
