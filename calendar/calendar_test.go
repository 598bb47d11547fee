package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sciflow/config"
)

func TestAddEventPostsPayload(t *testing.T) {
	var got eventPayload
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	client := NewClient(&config.Config{CalendarWebhookURL: srv.URL}, zap.NewNop())
	start := time.Date(2026, 9, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 26, 0, 0, 0, 0, time.UTC)
	client.AddEvent(context.Background(), "GopherCon", "Talks all day", "Berlin", &start, &end)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "GopherCon", got.Summary)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "2026-09-24", got.StartDate)
	assert.Equal(t, "2026-09-26", got.EndDate)
}

func TestAddEventWithoutEndDateCollapsesToStart(t *testing.T) {
	var got eventPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	client := NewClient(&config.Config{CalendarWebhookURL: srv.URL}, zap.NewNop())
	start := time.Date(2026, 9, 24, 0, 0, 0, 0, time.UTC)
	client.AddEvent(context.Background(), "GopherCon", "", "", &start, nil)

	assert.Equal(t, "2026-09-24", got.StartDate)
	assert.Equal(t, "2026-09-24", got.EndDate)
}

func TestAddEventDisabledWithoutWebhook(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient(&config.Config{}, zap.NewNop())
	client.AddEvent(context.Background(), "GopherCon", "", "", nil, nil)
	assert.Equal(t, 0, calls)
}

func TestAddEventSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(&config.Config{CalendarWebhookURL: srv.URL}, zap.NewNop())
	// Fehler des Webhooks erreichen den Aufrufer nie.
	client.AddEvent(context.Background(), "GopherCon", "", "", nil, nil)
}
