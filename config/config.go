package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
// Wird einmal in main gebaut und per Referenz in Services/Provider gereicht;
// nach dem Start liest nichts mehr aus dem Environment.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	// Externer Konferenz-Feed (untrusted, best-effort Input)
	DevEventsFeedURL string        `envconfig:"DEV_EVENTS_FEED_URL" default:"https://dev.events/rss.xml"`
	FeedTimeout      time.Duration `envconfig:"FEED_TIMEOUT" default:"10s"`

	SemanticScholarBaseURL string        `envconfig:"SEMANTIC_SCHOLAR_BASE_URL" default:"https://api.semanticscholar.org/graph/v1"`
	SemanticScholarAPIKey  string        `envconfig:"SEMANTIC_SCHOLAR_API_KEY"`
	SemanticScholarTimeout time.Duration `envconfig:"SEMANTIC_SCHOLAR_TIMEOUT" default:"30s"`

	// Kalender-Export als fire-and-forget Webhook; leer = deaktiviert
	CalendarWebhookURL string `envconfig:"CALENDAR_WEBHOOK_URL"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"@hourly"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
