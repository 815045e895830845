package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdfduck/pdfduck/internal/config"
)

// Server wraps the HTTP API: routing, middleware, and lifecycle.
type Server struct {
	cfg *config.Config
	srv *http.Server
}

// New builds the HTTP server with its full middleware chain.
func New(cfg *config.Config, extractor Extractor) *Server {
	h := newHandler(extractor, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /extract", h.handleExtract)
	mux.HandleFunc("POST /extract/batch", h.handleExtractBatch)

	// Middleware chain: recovery -> cors -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(handler)
	handler = corsMiddleware(cfg.CORSOrigins, handler)
	handler = recoveryMiddleware(handler)

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:         cfg.Address(),
			Handler:      handler,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// Handler exposes the composed handler chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
