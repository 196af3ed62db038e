// Package web serves snapshots over HTTP. It is a delivery adapter: each
// request runs an independent aggregation cycle and serializes the result.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hostsnap/hostsnap/internal/agg"
	"github.com/hostsnap/hostsnap/internal/config"
	"github.com/hostsnap/hostsnap/internal/probe"
)

// Server is the snapshot HTTP listener.
type Server struct {
	agg    *agg.Aggregator
	descs  []probe.Descriptor
	config *config.Config
	server *http.Server
}

// NewServer creates a new snapshot server.
func NewServer(aggregator *agg.Aggregator, descs []probe.Descriptor, cfg *config.Config) *Server {
	s := &Server{
		agg:    aggregator,
		descs:  descs,
		config: cfg,
	}
	s.server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.routes(),
	}
	return s
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("snapshot server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down snapshot server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Liveness check (no auth)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.Handle("GET /api/snapshot", s.requireAuth(http.HandlerFunc(s.handleSnapshot)))
	mux.Handle("GET /api/probes", s.requireAuth(http.HandlerFunc(s.handleProbes)))

	return mux
}
