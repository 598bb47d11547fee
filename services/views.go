package services

import (
	"time"

	"sciflow/models"
)

// Herkunft einer Konferenz im Read-Model.
const (
	SourceOwned    = "owned"
	SourceExternal = "external"
)

// ConferenceView ist das pro Request und pro Betrachter berechnete
// Read-Model einer Konferenz: persistierte Felder plus Aggregation plus
// Paper-Liste plus Herkunfts-Tag.
type ConferenceView struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Acronym       string     `json:"acronym,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	Description   string     `json:"description,omitempty"`
	Location      string     `json:"location,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Topics        string     `json:"topics,omitempty"`
	Speakers      string     `json:"speakers,omitempty"`
	Website       string     `json:"website,omitempty"`
	ColocatedWith []string   `json:"colocated_with"`
	OrganizerID   *uint      `json:"organizer_id,omitempty"`
	OrganizerName string     `json:"organizer_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Source        string     `json:"source"`

	ConferenceStats

	Events []models.Event `json:"events"`
	Papers []models.Paper `json:"papers"`
}

// BuildView baut das Read-Model einer persistierten Konferenz.
//
// Der übergebene Datensatz muss mit Preload("Events"), Preload("Papers") und
// Preload("Organizer") geladen sein: alle Relationen werden hier eager
// erwartet, es gibt absichtlich kein implizites Nachladen.
func (s *ConferenceService) BuildView(conf *models.Conference, viewerID *uint) (*ConferenceView, error) {
	stats, err := s.ComputeStats(conf.ID, viewerID)
	if err != nil {
		return nil, err
	}

	source := SourceOwned
	if conf.IsExternal {
		source = SourceExternal
	}

	view := &ConferenceView{
		ID:              conf.ID,
		Name:            conf.Name,
		Acronym:         conf.Acronym,
		Publisher:       conf.Publisher,
		Description:     conf.Description,
		Location:        conf.Location,
		StartDate:       conf.StartDate,
		EndDate:         conf.EndDate,
		Topics:          conf.Topics,
		Speakers:        conf.Speakers,
		ColocatedWith:   conf.ColocatedList(),
		OrganizerID:     conf.OrganizerID,
		CreatedAt:       conf.CreatedAt,
		Source:          source,
		ConferenceStats: stats,
		Events:          conf.Events,
		Papers:          conf.Papers,
	}
	if conf.Website != nil {
		view.Website = *conf.Website
	}
	if conf.Organizer != nil {
		view.OrganizerName = conf.Organizer.FullName
	}
	if view.Events == nil {
		view.Events = []models.Event{}
	}
	if view.Papers == nil {
		view.Papers = []models.Paper{}
	}
	return view, nil
}

// BuildCandidateView baut das Read-Model eines noch nicht persistierten
// Feed-Kandidaten. Statistiken sind fix null/leer (es kann noch keine
// Bewertungen oder Interessen geben) und die Herkunft ist "external".
func BuildCandidateView(c *models.CandidateConference) *ConferenceView {
	return &ConferenceView{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Location:      c.Location,
		StartDate:     c.StartDate,
		Website:       c.Website,
		ColocatedWith: []string{},
		Source:        SourceExternal,
		Events:        []models.Event{},
		Papers:        []models.Paper{},
	}
}
