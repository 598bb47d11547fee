package semanticscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sciflow/config"
)

func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()
	cfg := &config.Config{
		SemanticScholarBaseURL: baseURL,
		SemanticScholarAPIKey:  apiKey,
		SemanticScholarTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop())
}

func TestFetchBatchMapsResponse(t *testing.T) {
	var gotRequest batchRequest
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/paper/batch", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("fields"))
		gotAPIKey = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		fmt.Fprint(w, `[
			{
				"paperId": "abc123",
				"title": "A Study of Things",
				"abstract": "We study things.",
				"venue": "NeurIPS",
				"year": 2024,
				"citationCount": 42,
				"fieldsOfStudy": ["Computer Science", "Mathematics"],
				"openAccessPdf": {"url": "https://example.com/paper.pdf"},
				"externalIds": {"DOI": "10.1234/abc"}
			},
			null
		]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "secret-key")
	metas, err := client.FetchBatch(context.Background(), []string{"abc123", "missing"})
	require.NoError(t, err)

	assert.Equal(t, []string{"abc123", "missing"}, gotRequest.IDs)
	assert.Equal(t, "secret-key", gotAPIKey)

	// Antwort ist positionsgleich: der unbekannte Identifier bleibt nil.
	require.Len(t, metas, 2)
	require.Nil(t, metas[1])

	meta := metas[0]
	require.NotNil(t, meta)
	assert.Equal(t, "abc123", meta.PaperID)
	assert.Equal(t, "A Study of Things", meta.Title)
	assert.Equal(t, "NeurIPS", meta.Venue)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2024, *meta.Year)
	require.NotNil(t, meta.CitationCount)
	assert.Equal(t, 42, *meta.CitationCount)
	assert.Equal(t, "https://example.com/paper.pdf", meta.OpenAccessPDFURL)
	assert.Equal(t, "10.1234/abc", meta.DOI)
	assert.Equal(t, []string{"Computer Science", "Mathematics"}, meta.FieldsOfStudy)
}

func TestFetchBatchOmitsAPIKeyHeaderWhenUnset(t *testing.T) {
	headerPresent := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, headerPresent = r.Header["X-Api-Key"]
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.FetchBatch(context.Background(), []string{"abc"})
	require.NoError(t, err)
	assert.False(t, headerPresent)
}

func TestFetchBatchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.FetchBatch(context.Background(), []string{"abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
