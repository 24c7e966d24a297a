package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
// Note: all state lives in memory - there is no database, nothing survives a restart
type Config struct {
	// Environment
	Environment string
	Port        string

	// Renderer
	RendererURL   string // Base URL of the external wave renderer (serves GET /wave)
	PublicBaseURL string // Origin used when building exported embed code

	// Pipeline tuning
	DebounceQuiet time.Duration // Quiet period before a burst of edits triggers a render
	PresetCount   int           // Number of random presets built at startup
	PresetSeed    int64         // 0 means "seed from the clock at startup"

	// Observability
	SentryDSN string // Sentry DSN for error tracking
}

const (
	defaultDebounceMS  = 300
	defaultPresetCount = 4
)

func Load() *Config {
	rendererURL := getEnv("RENDERER_URL", "http://localhost:5000")

	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		RendererURL:   rendererURL,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", rendererURL),
		DebounceQuiet: time.Duration(getEnvInt("DEBOUNCE_MS", defaultDebounceMS)) * time.Millisecond,
		PresetCount:   getEnvInt("PRESET_COUNT", defaultPresetCount),
		PresetSeed:    int64(getEnvInt("PRESET_SEED", 0)),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default when the variable is unset, malformed or negative
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

// IsProduction returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
