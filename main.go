package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/wave-divider/internal/api"
	"github.com/Conceptual-Machines/wave-divider/internal/config"
	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	"github.com/Conceptual-Machines/wave-divider/internal/logger"
	"github.com/Conceptual-Machines/wave-divider/internal/metrics"
	"github.com/Conceptual-Machines/wave-divider/internal/presets"
	"github.com/Conceptual-Machines/wave-divider/internal/render"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "wave-divider@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// CloudWatch only publishes in production; a config error just disables it
	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		sentry.CaptureException(err)
		log.Printf("⚠️  CloudWatch metrics disabled: %v", err)
	}
	sentryMetrics := metrics.NewSentryMetrics()

	// Preset catalog is fixed for the lifetime of the process
	start := time.Now()
	rng, seed := presets.NewSource(cfg.PresetSeed)
	catalog := presets.Generate(cfg.PresetCount, rng)
	sentryMetrics.RecordPresetCatalog(len(catalog), seed, time.Since(start))
	log.Printf("🎲 Generated %d presets (seed: %d)", len(catalog), seed)

	recorder := metrics.Fanout{sentryMetrics}
	opts := controller.Options{
		RendererURL:   cfg.RendererURL,
		PublicBaseURL: cfg.PublicBaseURL,
		Quiet:         cfg.DebounceQuiet,
		HTTPClient:    http.DefaultClient,
		Presets:       catalog,
		OnFailure: func(f render.Failure) {
			logger.Error("Render failed", f.Err, logger.Fields{
				"seq":  f.Seq,
				"path": f.Path,
			})
		},
	}
	if cloudwatch != nil && cloudwatch.Enabled() {
		recorder = append(recorder, cloudwatch)
		opts.StaleCounter = cloudwatch
	}
	opts.Recorder = recorder

	ctrl := controller.New(opts)
	defer ctrl.Close()

	// Initial render runs in the background so a slow renderer does not delay startup
	go ctrl.Start(ctx)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(ctrl, cfg, GetVersion(), sentryMetrics)

	log.Printf("🚀 Starting server on port %s (renderer: %s)", cfg.Port, cfg.RendererURL)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
