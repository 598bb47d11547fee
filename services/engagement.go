package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sciflow/models"
)

// EngagementService bündelt die benutzerbezogenen Schreibpfade (Ratings,
// Interests, Kommentare). Alle Pfade laufen über Ensure: hängt ein Benutzer
// Daten an einen Feed-Kandidaten, wird der vorher materialisiert.
type EngagementService struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	Conferences *ConferenceService
}

// NewEngagementService erstellt einen neuen EngagementService.
func NewEngagementService(db *gorm.DB, logger *zap.Logger, conferences *ConferenceService) *EngagementService {
	return &EngagementService{DB: db, Logger: logger, Conferences: conferences}
}

// SubmitRating legt die Bewertung eines Benutzers an oder aktualisiert sie.
// Pro (user, conference) existiert höchstens eine Zeile; der Upsert läuft
// über den Unique-Index des Paars.
func (e *EngagementService) SubmitRating(ctx context.Context, userID, conferenceID uint, value float64, credibility *float64) (*models.Rating, error) {
	conf, err := e.Conferences.Ensure(ctx, conferenceID)
	if err != nil {
		return nil, err
	}

	rating := models.Rating{
		UserID:       userID,
		ConferenceID: conf.ID,
		Value:        value,
		Credibility:  credibility,
	}
	err = e.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "conference_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "credibility", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, err
	}

	var out models.Rating
	if err := e.DB.Where("user_id = ? AND conference_id = ?", userID, conf.ID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkInterest markiert eine Konferenz als interessant. Doppeltes Markieren
// ist ein benutzersichtbarer Konflikt, kein stilles No-Op; der Unique-Index
// auf dem Paar sichert das auch gegen parallele Requests ab.
func (e *EngagementService) MarkInterest(ctx context.Context, userID, conferenceID uint) error {
	conf, err := e.Conferences.Ensure(ctx, conferenceID)
	if err != nil {
		return err
	}

	var existing int64
	if err := e.DB.Model(&models.Interest{}).
		Where("user_id = ? AND conference_id = ?", userID, conf.ID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrAlreadyInterested
	}

	return e.DB.Create(&models.Interest{UserID: userID, ConferenceID: conf.ID}).Error
}

// RemoveInterest entfernt die Markierung wieder.
func (e *EngagementService) RemoveInterest(ctx context.Context, userID, conferenceID uint) error {
	result := e.DB.Where("user_id = ? AND conference_id = ?", userID, conferenceID).
		Delete(&models.Interest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterestNotFound
	}
	return nil
}

// ListInterests liefert die Read-Models aller Konferenzen, die der Benutzer
// markiert hat.
func (e *EngagementService) ListInterests(ctx context.Context, userID uint) ([]*ConferenceView, error) {
	var conferences []models.Conference
	err := e.DB.
		Preload("Events").
		Preload("Papers").
		Preload("Organizer").
		Joins("JOIN interests ON interests.conference_id = conferences.id").
		Where("interests.user_id = ?", userID).
		Find(&conferences).Error
	if err != nil {
		return nil, err
	}

	views := make([]*ConferenceView, 0, len(conferences))
	for i := range conferences {
		view, err := e.Conferences.BuildView(&conferences[i], &userID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// AddComment legt einen Kommentar an; Kommentare auf Feed-Kandidaten
// materialisieren die Konferenz zuerst.
func (e *EngagementService) AddComment(ctx context.Context, userID, conferenceID uint, content string) (*models.Comment, error) {
	conf, err := e.Conferences.Ensure(ctx, conferenceID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{UserID: userID, ConferenceID: conf.ID, Content: content}
	if err := e.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// IsNotFound meldet, ob ein Fehler der Not-Found-Familie angehört.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConferenceNotFound) ||
		errors.Is(err, ErrInterestNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}
