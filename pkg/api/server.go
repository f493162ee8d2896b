// Package api is the HTTP Facade (spec.md §4.7): the thin, stateless HTTP
// layer in front of the Job Manager, Batch Coordinator, and Provider
// Registry. Grounded in the teacher's pkg/api/server.go route-registration
// shape, adapted from Echo v5 to gin-gonic/gin — the teacher's go.mod
// carries gin (see pkg/api/handlers.go) but not echo, so gin is the real
// dependency to build on (documented in DESIGN.md).
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/codeready-toolchain/ctrleval/pkg/batch"
	"github.com/codeready-toolchain/ctrleval/pkg/config"
	"github.com/codeready-toolchain/ctrleval/pkg/job"
	"github.com/codeready-toolchain/ctrleval/pkg/provider"
)

// Server is the HTTP Facade.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	cfg        *config.Config
	registry   *provider.Registry
	coordinator *batch.Coordinator
	jobs       *job.Manager
	version    string
}

// NewServer constructs the HTTP Facade and registers its routes.
func NewServer(cfg *config.Config, registry *provider.Registry, coordinator *batch.Coordinator, jobs *job.Manager, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:      engine,
		cfg:         cfg,
		registry:    registry,
		coordinator: coordinator,
		jobs:        jobs,
		version:     version,
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Correlation-ID", cfg.HTTP.JWTPrincipalHeader},
	})
	engine.Use(func(c *gin.Context) {
		corsMiddleware.HandlerFunc(c.Writer, c.Request)
		c.Next()
	})
	engine.Use(securityHeaders())
	engine.Use(correlationID())
	// Server-wide body size limit: keeps multi-MB/GB payloads from reaching
	// JSON deserialization, complementing the per-request MaxSyncBatchSize check.
	engine.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 32<<20)
		c.Next()
	})

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)
	s.engine.GET("/config", s.configHandler)

	s.engine.POST("/evaluate", s.evaluateHandler)
	s.engine.POST("/evaluate/submit", s.submitHandler)
	s.engine.GET("/evaluate/status/:id", s.statusHandler)
	s.engine.GET("/evaluate/results/:id", s.resultsHandler)
	s.engine.POST("/evaluate/cancel/:id", s.cancelHandler)
}

// Start runs the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
