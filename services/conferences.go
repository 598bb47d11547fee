package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sciflow/config"
	"sciflow/models"
	"sciflow/providers"
)

// ConferenceService föderiert owned Konferenzen aus der Datenbank mit
// Kandidaten aus dem externen Feed: merged Listing, Detail-Lookup mit
// Materialisierung, Read-Model-Bau.
type ConferenceService struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	Feed   providers.CandidateProvider
}

// NewConferenceService erstellt einen neuen ConferenceService.
func NewConferenceService(cfg *config.Config, db *gorm.DB, logger *zap.Logger, feed providers.CandidateProvider) *ConferenceService {
	return &ConferenceService{Config: cfg, DB: db, Logger: logger, Feed: feed}
}

// ListFilter sind die optionalen Filter des Listing-Endpoints.
// MinRating filtert gegen den berechneten Durchschnitt, nicht gegen ein
// gespeichertes Feld; Kandidaten ohne Bewertungen fallen damit bei jedem
// MinRating-Filter heraus.
type ListFilter struct {
	Publisher string
	MinRating *float64
}

// ListMerged liefert die deduplizierte Vereinigung aus owned Konferenzen und
// aktuellen Feed-Kandidaten. Dedup-Schlüssel ist die kanonische URL; bei
// Gleichstand gewinnt immer die owned Zeile (eine früher materialisierte
// Konferenz verdrängt ihren noch im Feed lebenden Kandidaten).
func (s *ConferenceService) ListMerged(ctx context.Context, viewerID *uint, filter ListFilter) ([]*ConferenceView, error) {
	query := s.DB.
		Preload("Events").
		Preload("Papers").
		Preload("Organizer")
	if filter.Publisher != "" {
		query = query.Where("publisher = ?", filter.Publisher)
	}

	var owned []models.Conference
	if err := query.Find(&owned).Error; err != nil {
		return nil, err
	}

	views := make([]*ConferenceView, 0, len(owned))
	seen := make(map[string]bool, len(owned))
	for i := range owned {
		view, err := s.BuildView(&owned[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
		if owned[i].Website != nil {
			seen[normalizeURL(*owned[i].Website)] = true
		}
	}

	// Publisher-Filter schließt die Feed-Seite aus: Kandidaten tragen
	// keinen Publisher.
	if filter.Publisher == "" {
		for _, cand := range s.Feed.Fetch(ctx) {
			if seen[normalizeURL(cand.Website)] {
				continue
			}
			seen[normalizeURL(cand.Website)] = true
			views = append(views, BuildCandidateView(cand))
		}
	}

	if filter.MinRating != nil {
		filtered := views[:0]
		for _, v := range views {
			if v.AvgRating != nil && *v.AvgRating >= *filter.MinRating {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	sortViews(views)
	return views, nil
}

// Get liefert das Read-Model einer einzelnen Konferenz. Trifft die ID keine
// owned Zeile, aber einen aktuellen Feed-Kandidaten, wird der Kandidat vor
// dem Aufbau des Read-Models materialisiert.
func (s *ConferenceService) Get(ctx context.Context, id uint, viewerID *uint) (*ConferenceView, error) {
	conf, err := s.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}

	var loaded models.Conference
	err = s.DB.
		Preload("Events").
		Preload("Papers").
		Preload("Organizer").
		First(&loaded, conf.ID).Error
	if err != nil {
		return nil, err
	}
	return s.BuildView(&loaded, viewerID)
}

// Ensure gibt die persistierte Konferenz zu einer ID zurück und
// materialisiert dafür bei Bedarf einen Feed-Kandidaten. Jeder Endpoint, der
// Benutzerdaten an eine Konferenz hängt (Rating, Interest, Kommentar,
// Kalender-Export), läuft über diesen Pfad.
func (s *ConferenceService) Ensure(ctx context.Context, id uint) (*models.Conference, error) {
	var conf models.Conference
	err := s.DB.First(&conf, id).Error
	if err == nil {
		return &conf, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for _, cand := range s.Feed.Fetch(ctx) {
		if cand.ID == id {
			return s.Materialize(cand)
		}
	}
	return nil, ErrConferenceNotFound
}

// Materialize promotet einen Feed-Kandidaten zu einer owned Zeile. Die
// synthetische ID wird als Primärschlüssel übernommen, damit spätere
// Lookups unter derselben ID direkt die Datenbank treffen; IsExternal
// bleibt dauerhaft true, ein Organizer fehlt.
//
// Konkurrierende Promotions desselben Kandidaten laufen auf den
// Unique-Index der Website-Spalte: der Verlierer erzeugt keine zweite
// Zeile, sondern liest die des Gewinners.
func (s *ConferenceService) Materialize(cand *models.CandidateConference) (*models.Conference, error) {
	website := cand.Website
	conf := models.Conference{
		ID:          cand.ID,
		Name:        cand.Name,
		Description: cand.Description,
		Location:    cand.Location,
		StartDate:   cand.StartDate,
		Website:     &website,
		IsExternal:  true,
	}

	// Kein Conflict-Target: der Verlierer kann wahlweise auf dem
	// Primärschlüssel (gleicher Kandidat, gleiche synthetische ID) oder
	// auf dem Website-Index aufschlagen.
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conf)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		materializedCounter.Inc()
		s.Logger.Info("Feed-Kandidat materialisiert",
			zap.Uint("conference_id", conf.ID), zap.String("website", website))
	}

	var out models.Conference
	if err := s.DB.Where("website = ?", website).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// sortViews sortiert deterministisch: Startdatum aufsteigend, Einträge ohne
// Datum ans Ende, Gleichstand nach Name. Die Reihenfolge hängt damit nie
// davon ab, in welcher Reihenfolge die Quellen zusammengefügt wurden.
func sortViews(views []*ConferenceView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return a.Name < b.Name
		case a.StartDate == nil:
			return false
		case b.StartDate == nil:
			return true
		case a.StartDate.Equal(*b.StartDate):
			return a.Name < b.Name
		default:
			return a.StartDate.Before(*b.StartDate)
		}
	})
}
