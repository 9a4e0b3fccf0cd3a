package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/lumina-store/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.BackendGemini, cfg.Backend)
	assert.Equal(t, "gemini-3-flash-preview", cfg.ModelName)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModelName)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	assert.False(t, cfg.ForwardHistory)
	assert.Equal(t, config.CatalogEmbedded, cfg.CatalogBackend)
	assert.False(t, cfg.HasCredentials())
}

func TestLoadWithKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("LUMINA_FORWARD_HISTORY", "true")
	t.Setenv("LUMINA_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.HasCredentials())
	assert.True(t, cfg.ForwardHistory)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "LUMINA_BACKEND", "openai"},
		{"vertex without project", "LUMINA_BACKEND", "vertex"},
		{"firestore without project", "LUMINA_CATALOG_BACKEND", "firestore"},
		{"temperature", "LUMINA_TEMPERATURE", "3.5"},
		{"not a number", "LUMINA_TEMPERATURE", "warm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LUMINA_GCP_PROJECT", "")
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
