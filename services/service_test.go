package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sciflow/config"
	"sciflow/identity"
	"sciflow/models"
)

// newTestDB öffnet eine In-Memory-Datenbank mit dem vollen Schema.
// MaxOpenConns(1), damit alle Queries dieselbe Memory-Instanz treffen.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Conference{},
		&models.Event{},
		&models.Paper{},
		&models.Rating{},
		&models.Interest{},
		&models.Comment{},
		&models.Notification{},
	))
	return db
}

// stubFeed liefert eine feste Kandidatenliste.
type stubFeed struct {
	candidates []*models.CandidateConference
}

func (s *stubFeed) Fetch(ctx context.Context) []*models.CandidateConference {
	return s.candidates
}

func (s *stubFeed) Name() string { return "stub" }

func newTestConferenceService(t *testing.T, db *gorm.DB, feed *stubFeed) *ConferenceService {
	t.Helper()
	if feed == nil {
		feed = &stubFeed{}
	}
	return NewConferenceService(&config.Config{}, db, zap.NewNop(), feed)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, HashedPassword: "x", FullName: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createConference(t *testing.T, db *gorm.DB, name, website string) *models.Conference {
	t.Helper()
	conf := &models.Conference{Name: name}
	if website != "" {
		conf.Website = &website
	}
	require.NoError(t, db.Create(conf).Error)
	return conf
}

func newCandidate(url, name string) *models.CandidateConference {
	return &models.CandidateConference{
		ID:      identity.ResolveID(url),
		Name:    name,
		Website: url,
	}
}
