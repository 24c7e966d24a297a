package api

import (
	"github.com/Conceptual-Machines/wave-divider/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/wave-divider/internal/api/middleware"
	"github.com/Conceptual-Machines/wave-divider/internal/config"
	"github.com/Conceptual-Machines/wave-divider/internal/controller"
	webhandlers "github.com/Conceptual-Machines/wave-divider/internal/web/handlers"
	"github.com/gin-gonic/gin"
)

func SetupRouter(ctrl *controller.Controller, cfg *config.Config, version string, recorder apimiddleware.RequestRecorder) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(ctrl, cfg.RendererURL)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, ctrl)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Editor page
	webHandler := webhandlers.NewWebHandler(ctrl)
	router.GET("/", webHandler.Editor)

	waveHandler := handlers.NewWaveHandler(ctrl)
	wave := router.Group("/api")
	{
		wave.GET("/state", waveHandler.GetState)
		wave.PATCH("/params", waveHandler.UpdateParams)
		wave.POST("/flags/:flag/toggle", waveHandler.ToggleFlag)
		wave.POST("/regenerate", waveHandler.Regenerate)

		wave.GET("/presets", waveHandler.ListPresets)
		wave.POST("/presets/:index/apply", waveHandler.ApplyPreset)

		wave.GET("/preview", waveHandler.Preview)
		wave.GET("/export", waveHandler.Export)
		wave.GET("/events", waveHandler.Events)
	}

	return router
}
