package models

import (
	"time"
)

// CandidateConference ist eine aus dem externen Feed entdeckte Konferenz.
// Kandidaten haben keine Datenbankzeile; die ID ist synthetisch aus der
// kanonischen URL abgeleitet und bleibt über Prozessneustarts stabil.
// Erst die Materialisierung macht daraus eine owned Conference.
type CandidateConference struct {
	ID          uint
	Name        string
	Description string
	Location    string
	StartDate   *time.Time
	Website     string
}
