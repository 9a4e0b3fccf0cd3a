package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendVertex Backend = "vertex"
)

type CatalogBackend string

const (
	CatalogEmbedded  CatalogBackend = "embedded"
	CatalogFirestore CatalogBackend = "firestore"
)

type Config struct {
	Port     string `env:"LUMINA_PORT" envDefault:"8080"`
	LogLevel string `env:"LUMINA_LOG_LEVEL" envDefault:"info"`

	// LLM. A missing key puts the concierge in always-fallback mode.
	APIKey         string  `env:"GEMINI_API_KEY"`
	Backend        Backend `env:"LUMINA_BACKEND" envDefault:"gemini"`
	GCPProjectID   string  `env:"LUMINA_GCP_PROJECT"`
	GCPLocation    string  `env:"LUMINA_GCP_LOCATION" envDefault:"us-central1"`
	ModelName      string  `env:"LUMINA_MODEL" envDefault:"gemini-3-flash-preview"`
	ImageModelName string  `env:"LUMINA_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`
	Temperature    float32 `env:"LUMINA_TEMPERATURE" envDefault:"0.7"`
	UseMockLLM     bool    `env:"LUMINA_USE_MOCK_LLM" envDefault:"false"`
	ForwardHistory bool    `env:"LUMINA_FORWARD_HISTORY" envDefault:"false"`

	// Catalog
	CatalogBackend    CatalogBackend `env:"LUMINA_CATALOG_BACKEND" envDefault:"embedded"`
	CatalogCollection string         `env:"LUMINA_CATALOG_COLLECTION" envDefault:"products"`

	MaxImageBytes int64 `env:"LUMINA_MAX_IMAGE_BYTES" envDefault:"8388608"`
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendGemini:
	case BackendVertex:
		if c.GCPProjectID == "" {
			return fmt.Errorf("LUMINA_GCP_PROJECT must be set for the vertex backend")
		}
	default:
		return fmt.Errorf("unknown LUMINA_BACKEND %q", c.Backend)
	}

	switch c.CatalogBackend {
	case CatalogEmbedded:
	case CatalogFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("LUMINA_GCP_PROJECT must be set for the firestore catalog")
		}
	default:
		return fmt.Errorf("unknown LUMINA_CATALOG_BACKEND %q", c.CatalogBackend)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LUMINA_TEMPERATURE out of range: %v", c.Temperature)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("LUMINA_MAX_IMAGE_BYTES must be positive")
	}
	return nil
}

// HasCredentials reports whether a real model can be reached.
func (c *Config) HasCredentials() bool {
	if c.Backend == BackendVertex {
		return c.GCPProjectID != ""
	}
	return c.APIKey != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
