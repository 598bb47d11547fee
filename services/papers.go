package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sciflow/models"
	"sciflow/providers"
)

// PaperService importiert Paper-Metadaten über den Batch-Provider und
// persistiert sie als Paper-Zeilen einer Konferenz.
type PaperService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Metadata providers.MetadataProvider
	Notifier *Notifier
}

// NewPaperService erstellt einen neuen PaperService.
func NewPaperService(db *gorm.DB, logger *zap.Logger, metadata providers.MetadataProvider, notifier *Notifier) *PaperService {
	return &PaperService{DB: db, Logger: logger, Metadata: metadata, Notifier: notifier}
}

// ImportPapers löst die Identifier in einem einzigen gebatchten Roundtrip
// auf und legt für jeden Treffer eine Paper-Zeile an. Identifier werden vor
// dem Provider-Aufruf dedupliziert (kein Identifier geht zweimal raus);
// Identifier ohne Treffer werden übersprungen, nicht wiederholt, und
// erzeugen keine Zeile. Das Anlegen der Paper und der Benachrichtigungs-
// Fan-out laufen in einer Transaktion.
func (p *PaperService) ImportPapers(ctx context.Context, conferenceID uint, eventID *uint, identifiers []string, actorID uint) ([]models.Paper, error) {
	var conf models.Conference
	if err := p.DB.First(&conf, conferenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}

	ids := dedupeIdentifiers(identifiers)
	if len(ids) == 0 {
		return []models.Paper{}, nil
	}

	metas, err := p.Metadata.FetchBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	papers := make([]models.Paper, 0, len(metas))
	for _, meta := range metas {
		if meta == nil {
			continue
		}
		papers = append(papers, models.Paper{
			ConferenceID:     conferenceID,
			EventID:          eventID,
			S2PaperID:        meta.PaperID,
			DOI:              meta.DOI,
			Title:            meta.Title,
			Abstract:         meta.Abstract,
			Venue:            meta.Venue,
			Year:             meta.Year,
			CitationCount:    meta.CitationCount,
			OpenAccessPDFURL: meta.OpenAccessPDFURL,
			FieldsOfStudy:    strings.Join(meta.FieldsOfStudy, ", "),
		})
	}
	if len(papers) == 0 {
		p.Logger.Info("Kein Identifier aufgelöst, nichts zu importieren",
			zap.Uint("conference_id", conferenceID), zap.Int("requested", len(ids)))
		return []models.Paper{}, nil
	}

	err = p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&papers).Error; err != nil {
			return err
		}
		message := fmt.Sprintf("%d new papers were added to %s", len(papers), conf.Name)
		return p.Notifier.NotifyAll(tx, actorID, "New papers", message, &conf.ID)
	})
	if err != nil {
		return nil, err
	}

	p.Logger.Info("Paper-Import abgeschlossen",
		zap.Uint("conference_id", conferenceID),
		zap.Int("requested", len(ids)), zap.Int("created", len(papers)))
	return papers, nil
}

// dedupeIdentifiers entfernt Duplikate und leere Einträge, Reihenfolge
// bleibt erhalten.
func dedupeIdentifiers(identifiers []string) []string {
	seen := make(map[string]bool, len(identifiers))
	out := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
