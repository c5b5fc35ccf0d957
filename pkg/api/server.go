// Package api provides the RESTful HTTP API server for administering
// the firewall rule server. It exposes endpoints for rule management,
// connection checks, audit log queries, statistics, and health checks.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// Server represents the HTTP API server. It uses the Gin framework and
// shares the request engine (and therefore the engine's mutex) with the
// TCP protocol surface, so transactions issued over HTTP are atomic
// with respect to wire-protocol requests.
type Server struct {
	config     *Config
	engine     engine.Service
	httpServer *http.Server
	router     *gin.Engine
}

// NewAPIServer creates and initializes a new API server instance.
// It sets up the Gin router, configures middleware, and registers all
// routes. A nil config uses defaults.
func NewAPIServer(cfg *Config, eng engine.Service) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Empty TrustedProxies disables proxy header trust entirely;
	// forwarded-for spoofing would otherwise pollute the request log.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	server := &Server{
		config: cfg,
		engine: eng,
		router: router,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server in a background goroutine.
// This method returns immediately; the server runs asynchronously.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Infof("Starting API server on %s", addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server, waiting up to 30 seconds
// for in-flight requests to complete.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	log.Info("Shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("API server forced to shutdown: %v", err)
		return err
	}

	log.Info("API server stopped gracefully")
	return nil
}

// GetRouter returns the underlying Gin router instance. This is
// primarily useful for testing purposes to inject test HTTP requests
// without starting the full HTTP server.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
