package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "RENDERER_URL", "PUBLIC_BASE_URL",
		"DEBOUNCE_MS", "PRESET_COUNT", "PRESET_SEED", "SENTRY_DSN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.RendererURL)
	assert.Equal(t, cfg.RendererURL, cfg.PublicBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceQuiet)
	assert.Equal(t, 4, cfg.PresetCount)
	assert.Equal(t, int64(0), cfg.PresetSeed)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RENDERER_URL", "https://waves.example.com")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("DEBOUNCE_MS", "150")
	t.Setenv("PRESET_COUNT", "8")
	t.Setenv("PRESET_SEED", "42")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://waves.example.com", cfg.RendererURL)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceQuiet)
	assert.Equal(t, 8, cfg.PresetCount)
	assert.Equal(t, int64(42), cfg.PresetSeed)
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	t.Setenv("DEBOUNCE_MS", "soon")
	t.Setenv("PRESET_COUNT", "-3")

	cfg := Load()

	assert.Equal(t, 300*time.Millisecond, cfg.DebounceQuiet)
	assert.Equal(t, 4, cfg.PresetCount)
}
