// Package server exposes the decode pipeline over HTTP: decode uploads,
// the scan log, the product table, Prometheus metrics, and a websocket feed
// of new scans.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/strichware/bardec/internal/pipeline"
	"github.com/strichware/bardec/internal/store"
)

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	CORSOrigin      string
	MaxUploadMB     int64
	TimeoutSec      int
	ShutdownTimeout int
	RateLimitPerMin int
	Pipeline        pipeline.Config
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    *pipeline.Pipeline
	store       *store.Store
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// NewServer creates a server with a pipeline built from config.
func NewServer(config Config) (*Server, error) {
	pl, err := pipeline.NewBuilder().
		WithBudget(config.Pipeline.Budget).
		WithTimeout(config.Pipeline.Timeout).
		WithWorkers(config.Pipeline.Workers).
		WithTraceLimit(config.Pipeline.TraceLimit).
		WithMatrix(config.Pipeline.EnableMatrix).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	s := &Server{
		pipeline:    pl,
		store:       store.New(),
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
	if config.RateLimitPerMin > 0 {
		s.rateLimiter = NewRateLimiter(config.RateLimitPerMin)
	}
	return s, nil
}

// Store returns the server's scan store.
func (s *Server) Store() *store.Store { return s.store }

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/decode", s.corsMiddleware(s.rateLimitMiddleware(s.decodeHandler)))
	mux.HandleFunc("/scans", s.corsMiddleware(s.scansHandler))
	mux.HandleFunc("/products", s.corsMiddleware(s.productsHandler))
	mux.HandleFunc("/ws/scans", s.scansWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(s.timeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.timeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
