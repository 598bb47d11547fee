package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sciflow/models"
	"sciflow/providers"
)

// stubMetadata gibt eine feste Batch-Antwort zurück und merkt sich die
// angefragten Identifier.
type stubMetadata struct {
	metas  []*providers.PaperMetadata
	err    error
	gotIDs []string
}

func (s *stubMetadata) FetchBatch(ctx context.Context, identifiers []string) ([]*providers.PaperMetadata, error) {
	s.gotIDs = identifiers
	if s.err != nil {
		return nil, s.err
	}
	return s.metas, nil
}

func newTestPaperService(db *gorm.DB, metadata providers.MetadataProvider) *PaperService {
	return NewPaperService(db, zap.NewNop(), metadata, NewNotifier(db, zap.NewNop()))
}

func TestImportPapersCreatesRowsAndNotifies(t *testing.T) {
	db := newTestDB(t)
	conf := createConference(t, db, "NeurIPS 2026", "")
	actor := createUser(t, db, "actor@example.com")
	other := createUser(t, db, "other@example.com")

	year := 2024
	citations := 42
	metadata := &stubMetadata{metas: []*providers.PaperMetadata{
		{
			PaperID:       "abc",
			DOI:           "10.1/abc",
			Title:         "A Study of Things",
			Year:          &year,
			CitationCount: &citations,
			FieldsOfStudy: []string{"Computer Science", "Mathematics"},
		},
		nil,
	}}
	svc := newTestPaperService(db, metadata)

	// Duplikate und Leereinträge gehen nicht raus, Reihenfolge bleibt.
	created, err := svc.ImportPapers(context.Background(),
		conf.ID, nil, []string{"abc", "abc", " missing ", ""}, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "missing"}, metadata.gotIDs)

	// Der nil-Treffer erzeugt keine Zeile.
	require.Len(t, created, 1)
	assert.Equal(t, "A Study of Things", created[0].Title)
	assert.Equal(t, "Computer Science, Mathematics", created[0].FieldsOfStudy)

	var papers []models.Paper
	require.NoError(t, db.Find(&papers).Error)
	require.Len(t, papers, 1)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, other.ID, notifications[0].UserID)
	assert.Contains(t, notifications[0].Message, "NeurIPS 2026")
}

func TestImportPapersUnknownConference(t *testing.T) {
	db := newTestDB(t)
	actor := createUser(t, db, "actor@example.com")
	svc := newTestPaperService(db, &stubMetadata{})

	_, err := svc.ImportPapers(context.Background(), 424242, nil, []string{"abc"}, actor.ID)
	assert.ErrorIs(t, err, ErrConferenceNotFound)
}

func TestImportPapersProviderError(t *testing.T) {
	db := newTestDB(t)
	conf := createConference(t, db, "Conf", "")
	actor := createUser(t, db, "actor@example.com")
	svc := newTestPaperService(db, &stubMetadata{err: errors.New("upstream down")})

	_, err := svc.ImportPapers(context.Background(), conf.ID, nil, []string{"abc"}, actor.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Paper{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestImportPapersNothingResolved(t *testing.T) {
	db := newTestDB(t)
	conf := createConference(t, db, "Conf", "")
	actor := createUser(t, db, "actor@example.com")
	createUser(t, db, "other@example.com")
	svc := newTestPaperService(db, &stubMetadata{metas: []*providers.PaperMetadata{nil, nil}})

	created, err := svc.ImportPapers(context.Background(), conf.ID, nil, []string{"a", "b"}, actor.ID)
	require.NoError(t, err)
	assert.Empty(t, created)

	// Ohne neue Paper gibt es auch keinen Fan-out.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestImportPapersAttachesToEvent(t *testing.T) {
	db := newTestDB(t)
	conf := createConference(t, db, "Conf", "")
	actor := createUser(t, db, "actor@example.com")
	event := models.Event{ConferenceID: conf.ID, Title: "Main Track", Type: "main"}
	require.NoError(t, db.Create(&event).Error)

	svc := newTestPaperService(db, &stubMetadata{metas: []*providers.PaperMetadata{{PaperID: "abc", Title: "T"}}})
	created, err := svc.ImportPapers(context.Background(), conf.ID, &event.ID, []string{"abc"}, actor.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.NotNil(t, created[0].EventID)
	assert.Equal(t, event.ID, *created[0].EventID)
}
