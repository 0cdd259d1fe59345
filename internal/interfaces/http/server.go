package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/config"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
)

// Server wraps the standard http.Server with the router and the configured
// timeouts.
type Server struct {
	srv    *http.Server
	router http.Handler
	logger logging.Logger
	port   int
}

// NewServer builds the server over an already-wired router.
func NewServer(cfg config.ServerConfig, router http.Handler, logger logging.Logger) *Server {
	return &Server{
		router: router,
		logger: logger.Named("http_server"),
		port:   cfg.Port,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
// http.ErrServerClosed is swallowed as the normal shutdown outcome.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.Int("port", s.port))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
