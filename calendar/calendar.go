// Package calendar kapselt den Kalender-Export als schmalen
// fire-and-forget Aufruf gegen einen konfigurierten Webhook.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sciflow/config"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Client schickt Konferenz-Termine an den Kalender-Webhook.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewClient erstellt einen neuen Kalender-Client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{Config: cfg, Logger: logger}
}

type eventPayload struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// AddEvent exportiert einen All-Day-Termin. Fire-and-forget: Fehler werden
// geloggt und nie an den Aufrufer gereicht; ein fehlender Webhook
// deaktiviert den Export komplett.
func (c *Client) AddEvent(ctx context.Context, summary, description, location string, start, end *time.Time) {
	if c.Config.CalendarWebhookURL == "" {
		c.Logger.Debug("Kalender-Webhook nicht konfiguriert, Export übersprungen")
		return
	}

	startDate := time.Now()
	if start != nil {
		startDate = *start
	}
	endDate := startDate
	if end != nil {
		endDate = *end
	}

	payload := eventPayload{
		Summary:     summary,
		Description: description,
		Location:    location,
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.Logger.Warn("Kalender-Payload nicht serialisierbar", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.CalendarWebhookURL, bytes.NewReader(body))
	if err != nil {
		c.Logger.Warn("Kalender-Request nicht baubar", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		c.Logger.Warn("Kalender-Export fehlgeschlagen", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.Logger.Warn("Kalender-Webhook lehnt ab", zap.Int("status", resp.StatusCode))
		return
	}
	c.Logger.Info("Termin exportiert", zap.String("summary", summary))
}
