package services

import (
	"errors"

	"gorm.io/gorm"

	"sciflow/models"
)

// ConferenceStats ist das aggregierte Bewertungsbild einer Konferenz,
// optional angereichert um die persönlichen Flags eines Betrachters.
type ConferenceStats struct {
	// Nil bei null Bewertungen; 0.0 würde wie eine real abgegebene
	// Bewertung aussehen.
	AvgRating      *float64 `json:"avg_rating"`
	TotalRatings   int64    `json:"total_ratings"`
	TotalInterests int64    `json:"total_interests"`

	UserRating     *float64 `json:"user_rating"`
	UserInterested bool     `json:"user_interested"`
}

// ComputeStats liest die Aggregation für eine Konferenz. Reiner Lesezugriff
// ohne eigenes Locking; das Ergebnis darf minimal hinter parallelen
// Schreibern herlaufen (read-committed reicht).
func (s *ConferenceService) ComputeStats(conferenceID uint, viewerID *uint) (ConferenceStats, error) {
	var stats ConferenceStats

	var agg struct {
		Avg *float64
		Cnt int64
	}
	err := s.DB.Model(&models.Rating{}).
		Select("AVG(rating) AS avg, COUNT(*) AS cnt").
		Where("conference_id = ?", conferenceID).
		Scan(&agg).Error
	if err != nil {
		return stats, err
	}
	stats.AvgRating = agg.Avg
	stats.TotalRatings = agg.Cnt

	if err := s.DB.Model(&models.Interest{}).
		Where("conference_id = ?", conferenceID).
		Count(&stats.TotalInterests).Error; err != nil {
		return stats, err
	}

	if viewerID == nil {
		return stats, nil
	}

	var rating models.Rating
	err = s.DB.Where("user_id = ? AND conference_id = ?", *viewerID, conferenceID).
		First(&rating).Error
	switch {
	case err == nil:
		stats.UserRating = &rating.Value
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return stats, err
	}

	var interested int64
	if err := s.DB.Model(&models.Interest{}).
		Where("user_id = ? AND conference_id = ?", *viewerID, conferenceID).
		Count(&interested).Error; err != nil {
		return stats, err
	}
	stats.UserInterested = interested > 0

	return stats, nil
}
