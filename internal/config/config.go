package config

import (
	"fmt"
	"time"

	"github.com/taskverse/taskverse/internal/env"
)

// Config holds the application configuration, loaded from TASKVERSE_*
// environment variables.
type Config struct {
	// Server
	Env          string `env:"TASKVERSE_ENV" default:"dev"` // dev, prod
	HTTPPort     string `env:"TASKVERSE_HTTP_PORT" default:"8080"`
	MaxBodyBytes int64  `env:"TASKVERSE_MAX_BODY_BYTES" default:"1048576"`
	CORSOrigins  string `env:"TASKVERSE_CORS_ORIGINS" default:"*"` // comma-separated

	// Auth
	AuthSecret string `env:"TASKVERSE_AUTH_SECRET"`

	// Postgres
	PostgresURL     string        `env:"TASKVERSE_POSTGRES_URL"`
	PostgresMaxConn int32         `env:"TASKVERSE_POSTGRES_MAX_CONNS"`
	ConnectTimeout  time.Duration `env:"TASKVERSE_POSTGRES_CONNECT_TIMEOUT" default:"10s"`

	// Export snapshot storage
	StorageType string `env:"TASKVERSE_STORAGE_TYPE" default:"fs"` // fs, gcs
	FSDir       string `env:"TASKVERSE_FS_DIR" default:"./taskverse-data"`
	GCSBucket   string `env:"TASKVERSE_GCS_BUCKET"`

	// AI tag suggestion
	AIBaseURL string        `env:"TASKVERSE_AI_BASE_URL"`
	AIAPIKey  string        `env:"TASKVERSE_AI_API_KEY"`
	AIModel   string        `env:"TASKVERSE_AI_MODEL" default:"gpt-4o-mini"`
	AITimeout time.Duration `env:"TASKVERSE_AI_TIMEOUT" default:"15s"`

	// Reminder worker
	ReminderInterval time.Duration `env:"TASKVERSE_REMINDER_INTERVAL" default:"60s"`

	// Observability; exporter endpoint and headers come from the standard
	// OTEL_EXPORTER_OTLP_* variables.
	OTelEnabled bool `env:"TASKVERSE_OTEL_ENABLED" default:"false"`
}

// Load parses environment variables into a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("TASKVERSE_POSTGRES_URL is required")
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("TASKVERSE_AUTH_SECRET is required")
	}

	switch c.StorageType {
	case "fs":
		if c.FSDir == "" {
			return fmt.Errorf("TASKVERSE_FS_DIR is required when TASKVERSE_STORAGE_TYPE is 'fs'")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("TASKVERSE_GCS_BUCKET is required when TASKVERSE_STORAGE_TYPE is 'gcs'")
		}
	default:
		return fmt.Errorf("unknown TASKVERSE_STORAGE_TYPE: %s", c.StorageType)
	}

	if c.ReminderInterval <= 0 {
		return fmt.Errorf("TASKVERSE_REMINDER_INTERVAL must be positive")
	}
	return nil
}
