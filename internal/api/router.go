package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/chordchart-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/chordchart-api/internal/api/middleware"
	"github.com/Conceptual-Machines/chordchart-api/internal/catalog"
	"github.com/Conceptual-Machines/chordchart-api/internal/chart"
	"github.com/Conceptual-Machines/chordchart-api/internal/config"
	"github.com/Conceptual-Machines/chordchart-api/internal/metrics"
	"github.com/Conceptual-Machines/chordchart-api/internal/render"
	webhandlers "github.com/Conceptual-Machines/chordchart-api/internal/web/handlers"
)

func SetupRouter(cfg *config.Config, cat *catalog.Catalog, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// Bound form submissions
	router.Use(apimiddleware.LimitBody(cfg.MaxUploadBytes))

	// Chord diagrams and other static assets
	router.Static("/static", "./static")

	// Health check
	healthHandler := handlers.NewHealthHandler(cat)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cat, cw)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Song form and chart generation
	webHandler := webhandlers.NewWebHandler(cfg)
	router.GET("/", webHandler.Home)

	builder := chart.NewBuilder(cat, cfg.GroupsPerRow)
	renderer := render.New(render.OptionsFromConfig(cfg))
	chartHandler := handlers.NewChartHandler(cfg, builder, renderer, cw)
	router.POST("/", chartHandler.Generate)

	return router
}
