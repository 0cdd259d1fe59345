// Package http wires the gin router and the HTTP server for the laudo
// backend.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	promx "github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/prometheus"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/interfaces/http/handlers"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/interfaces/http/middleware"
)

// RouterConfig aggregates everything the router mounts.  Health and Laudo
// handlers are required; the rest are optional and their routes are simply
// not registered when nil or disabled.
type RouterConfig struct {
	Mode string // gin mode: "debug" | "release" | "test"

	Laudos *handlers.LaudoHandler
	Tests  *handlers.TestHandler
	Specs  *handlers.SpecHandler
	Health *handlers.HealthHandler

	Metrics *promx.Metrics
	Logger  logging.Logger

	// APIKey guards the /api/v1 group; empty disables authentication.
	APIKey string

	// DocumentsEnabled mounts the attachment routes.
	DocumentsEnabled bool
}

// NewRouter builds the gin engine with the full route table:
//
//	GET  /healthz
//	GET  /readyz
//	GET  /metrics
//	POST   /api/v1/laudos
//	GET    /api/v1/laudos/:id
//	DELETE /api/v1/laudos/:id
//	POST   /api/v1/laudos/:id/tests
//	POST   /api/v1/laudos/:id/documentos
//	GET    /api/v1/laudos/:id/documentos
//	GET    /api/v1/laudos/:id/documentos/:name
//	PUT    /api/v1/tests/:id
//	GET    /api/v1/models/:id/rules
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	engine.Use(middleware.RequestLogging(cfg.Logger, cfg.Metrics, middleware.DefaultLoggingConfig()))

	engine.GET("/healthz", cfg.Health.Liveness)
	engine.GET("/readyz", cfg.Health.Readiness)
	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.APIKeyAuth(cfg.APIKey, cfg.Logger))

	api.POST("/laudos", cfg.Laudos.Create)
	api.GET("/laudos/:id", cfg.Laudos.Get)
	api.DELETE("/laudos/:id", cfg.Laudos.Delete)
	api.POST("/laudos/:id/tests", cfg.Laudos.AddTest)

	if cfg.DocumentsEnabled {
		api.POST("/laudos/:id/documentos", cfg.Laudos.AttachDocument)
		api.GET("/laudos/:id/documentos", cfg.Laudos.ListDocuments)
		api.GET("/laudos/:id/documentos/:name", cfg.Laudos.DocumentURL)
	}

	if cfg.Tests != nil {
		api.PUT("/tests/:id", cfg.Tests.Edit)
	}
	if cfg.Specs != nil {
		api.GET("/models/:id/rules", cfg.Specs.ModelRules)
	}

	return engine
}
