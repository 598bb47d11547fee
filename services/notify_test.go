package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sciflow/models"
)

func TestNotifyAllExcludesActor(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotifier(db, zap.NewNop())
	actor := createUser(t, db, "actor@example.com")
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	conf := createConference(t, db, "Conf", "")

	require.NoError(t, notifier.NotifyAll(db, actor.ID, "New conference", "Conf was added", &conf.ID))

	var notifications []models.Notification
	require.NoError(t, db.Order("user_id").Find(&notifications).Error)
	require.Len(t, notifications, 2)

	assert.Equal(t, alice.ID, notifications[0].UserID)
	assert.Equal(t, bob.ID, notifications[1].UserID)
	for _, n := range notifications {
		assert.Equal(t, "New conference", n.Title)
		require.NotNil(t, n.ConferenceID)
		assert.Equal(t, conf.ID, *n.ConferenceID)
		assert.False(t, n.IsRead)
	}
}

func TestNotifyAllNoRecipients(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotifier(db, zap.NewNop())
	actor := createUser(t, db, "actor@example.com")

	require.NoError(t, notifier.NotifyAll(db, actor.ID, "Title", "Message", nil))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestNotifyAllRunsInCallerTransaction(t *testing.T) {
	db := newTestDB(t)
	notifier := NewNotifier(db, zap.NewNop())
	createUser(t, db, "actor@example.com")
	createUser(t, db, "alice@example.com")

	// Rollback der umgebenden Transaktion nimmt den Fan-out mit zurück.
	tx := db.Begin()
	require.NoError(t, notifier.NotifyAll(tx, 1, "Title", "Message", nil))
	tx.Rollback()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
