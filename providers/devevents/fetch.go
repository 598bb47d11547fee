package devevents

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"sciflow/config"
	"sciflow/identity"
	"sciflow/models"
)

var fetchFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "feed_fetch_failures_total",
	Help: "Number of failed external feed fetches.",
})

func init() {
	prometheus.MustRegister(fetchFailuresCounter)
}

// Das Beschreibungsformat des Feeds ist ein festes Textmuster:
// "<Titel> is happening on <Datum>, <Ort>. More information: <URL>".
// Die Extraktion ist eine Heuristik, keine Garantie: passt das Muster nicht
// oder lässt sich das Datum nicht parsen, bleibt das Datum leer und der Ort
// fällt auf den Unknown-Sentinel zurück. Nicht konforme Beschreibungen
// degradieren still, sie erzeugen keinen Fehler.
var descriptionPattern = regexp.MustCompile(`is happening on (.+?, \d{4}), (.+?)\. More information:`)

const (
	dateLayout      = "January 2, 2006"
	unknownLocation = "Unknown"
)

// Fetcher implementiert das CandidateProvider-Interface für dev.events.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
	parser *gofeed.Parser
}

// NewFetcher erstellt einen neuen dev.events Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.FeedTimeout}
	return &Fetcher{Config: cfg, Logger: logger, parser: parser}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "devevents"
}

// Fetch holt den RSS-Feed und mappt jedes Item auf einen Kandidaten.
// Best-effort: jeder Fehler (Netzwerk, HTTP-Status, Parse) führt zu einer
// leeren Liste und einem Log-Eintrag, nie zu einem Fehler beim Aufrufer.
func (f *Fetcher) Fetch(ctx context.Context) []*models.CandidateConference {
	ctx, cancel := context.WithTimeout(ctx, f.Config.FeedTimeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(f.Config.DevEventsFeedURL, ctx)
	if err != nil {
		fetchFailuresCounter.Inc()
		f.Logger.Warn("Feed nicht erreichbar oder nicht parsebar, degradiere auf owned-only",
			zap.String("url", f.Config.DevEventsFeedURL), zap.Error(err))
		return nil
	}

	var candidates []*models.CandidateConference
	for _, item := range feed.Items {
		if c := mapItem(item); c != nil {
			candidates = append(candidates, c)
		}
	}

	f.Logger.Info("Feed-Abruf abgeschlossen", zap.Int("candidates", len(candidates)))
	return candidates
}

// mapItem konvertiert ein Feed-Item in einen Kandidaten. Items ohne Link
// werden verworfen: ohne kanonische URL gibt es keine stabile ID.
func mapItem(item *gofeed.Item) *models.CandidateConference {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return nil
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "Unknown Conference"
	}

	startDate, location := extractDateAndLocation(item.Description)

	return &models.CandidateConference{
		ID:          identity.ResolveID(link),
		Name:        title,
		Description: item.Description,
		Location:    location,
		StartDate:   startDate,
		Website:     link,
	}
}

func extractDateAndLocation(description string) (*time.Time, string) {
	m := descriptionPattern.FindStringSubmatch(description)
	if m == nil {
		return nil, unknownLocation
	}

	location := strings.TrimSpace(m[2])

	dt, err := time.Parse(dateLayout, strings.TrimSpace(m[1]))
	if err != nil {
		// Datumsbereiche wie "Sep 24-25 2026" parsen nicht unter dem
		// einen bekannten Layout; das Datum bleibt dann einfach leer.
		return nil, location
	}
	return &dt, location
}
