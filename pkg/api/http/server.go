package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aescanero/kubedemo/internal/application/probe"
	"github.com/aescanero/kubedemo/internal/application/workload"
	"github.com/aescanero/kubedemo/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router    *gin.Engine
	server    *http.Server
	metrics   *prometheus.Collector
	monitor   *probe.Monitor
	simulator *workload.Simulator
	logger    *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Addr      string
	Metrics   *prometheus.Collector
	Monitor   *probe.Monitor
	Simulator *workload.Simulator
	Logger    *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Only the exact routes exist; a 301 would look healthy to the kubelet.
	router.RedirectTrailingSlash = false
	router.Use(recovery(cfg.Logger))
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))

	s := &Server{
		router:    router,
		metrics:   cfg.Metrics,
		monitor:   cfg.Monitor,
		simulator: cfg.Simulator,
		logger:    cfg.Logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupRoutes configures the service routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHome)

	// Kubernetes probes
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ready", s.handleReady)

	s.router.GET("/work", s.handleWork)
	s.router.GET("/metrics", s.handleMetrics)

	s.router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 page not found")
	})
}

// Handler returns the root handler, used by tests and embedding servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
