package providers

import (
	"context"

	"sciflow/models"
)

// CandidateProvider liefert Konferenz-Kandidaten aus einer externen Quelle.
type CandidateProvider interface {
	// Fetch holt die aktuellen Kandidaten. Best-effort: bei Netzwerk-,
	// Status- oder Parse-Fehlern kommt eine leere Liste zurück, nie ein
	// Fehler; die Föderation degradiert auf "nur owned Konferenzen".
	Fetch(ctx context.Context) []*models.CandidateConference

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "devevents").
	Name() string
}

// PaperMetadata ist das normalisierte Ergebnis des Metadaten-Providers
// für einen einzelnen Identifier.
type PaperMetadata struct {
	PaperID          string
	DOI              string
	Title            string
	Abstract         string
	Venue            string
	Year             *int
	CitationCount    *int
	OpenAccessPDFURL string
	FieldsOfStudy    []string
}

// MetadataProvider löst bibliografische Identifier in einem einzigen
// gebatchten Roundtrip auf. Pro Identifier kann das Ergebnis nil sein
// (Provider kennt ihn nicht); solche Einträge werden vom Aufrufer
// übersprungen, nicht wiederholt.
type MetadataProvider interface {
	FetchBatch(ctx context.Context, identifiers []string) ([]*PaperMetadata, error)
}
