package semanticscholar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"sciflow/config"
	"sciflow/providers"
)

// Feldliste der Graph-API; eine Quelle für Einzel- und Batch-Abruf.
var requestFields = strings.Join([]string{
	"title",
	"abstract",
	"venue",
	"year",
	"citationCount",
	"openAccessPdf",
	"fieldsOfStudy",
	"externalIds",
}, ",")

// Client kapselt die Semantic Scholar Graph-API.
type Client struct {
	Config     *config.Config
	Logger     *zap.Logger
	httpClient *http.Client
}

// NewClient erstellt einen neuen Semantic-Scholar-Client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		Config:     cfg,
		Logger:     logger,
		httpClient: &http.Client{Timeout: cfg.SemanticScholarTimeout},
	}
}

// FetchBatch löst alle Identifier in einem einzigen POST auf. Die Antwort
// ist positionsgleich zur Anfrage; unbekannte Identifier kommen als nil
// zurück und bleiben nil; übersprungen wird beim Aufrufer, nicht hier.
func (c *Client) FetchBatch(ctx context.Context, identifiers []string) ([]*providers.PaperMetadata, error) {
	endpoint := fmt.Sprintf("%s/paper/batch?fields=%s",
		strings.TrimRight(c.Config.SemanticScholarBaseURL, "/"), url.QueryEscape(requestFields))

	body, err := json.Marshal(batchRequest{IDs: identifiers})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Config.SemanticScholarAPIKey != "" {
		req.Header.Set("x-api-key", c.Config.SemanticScholarAPIKey)
	}

	log := c.Logger.With(zap.Int("identifiers", len(identifiers)))
	log.Debug("Rufe Semantic Scholar Batch-API auf", zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar batch request failed with status: %d", resp.StatusCode)
	}

	var raw []*paperResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	results := make([]*providers.PaperMetadata, len(raw))
	resolved := 0
	for i, entry := range raw {
		if entry == nil {
			continue
		}
		results[i] = mapResponseToMetadata(entry)
		resolved++
	}

	log.Info("Semantic Scholar Batch abgeschlossen",
		zap.Int("resolved", resolved), zap.Int("unresolved", len(raw)-resolved))
	return results, nil
}

// mapResponseToMetadata konvertiert die API-Antwort in unser internes Modell.
func mapResponseToMetadata(entry *paperResponse) *providers.PaperMetadata {
	meta := &providers.PaperMetadata{
		PaperID:       entry.PaperID,
		Title:         entry.Title,
		Abstract:      entry.Abstract,
		Venue:         entry.Venue,
		Year:          entry.Year,
		CitationCount: entry.CitationCount,
		FieldsOfStudy: entry.FieldsOfStudy,
	}
	if entry.OpenAccessPDF != nil {
		meta.OpenAccessPDFURL = entry.OpenAccessPDF.URL
	}
	if entry.ExternalIDs != nil {
		meta.DOI = entry.ExternalIDs.DOI
	}
	return meta
}
