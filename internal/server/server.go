// Package server provides the loopback HTTP API the UI shell talks to:
// settings, saved matches, analysis launch, and the event stream.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonathan/job-hunter/internal/notify"
	"github.com/jonathan/job-hunter/internal/settings"
	"github.com/jonathan/job-hunter/internal/tools"
)

// Config holds the server's collaborators.
type Config struct {
	Port     int
	RPCPort  int
	Settings settings.Store
	Matches  tools.MatchStore
	Bus      *notify.Bus
	Log      *slog.Logger
}

// Server is the UI-facing HTTP server.
type Server struct {
	httpServer *http.Server
	rpcPort    int
	settings   settings.Store
	matches    tools.MatchStore
	bus        *notify.Bus
	log        *slog.Logger
}

// New creates the server and its routes.
func New(cfg Config) *Server {
	s := &Server{
		rpcPort:  cfg.RPCPort,
		settings: cfg.Settings,
		matches:  cfg.Matches,
		bus:      cfg.Bus,
		log:      cfg.Log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /matches", s.handleListMatches)
	mux.HandleFunc("DELETE /matches", s.handleClearMatches)
	mux.HandleFunc("POST /analyses", s.handleStartAnalysis)
	mux.HandleFunc("GET /events", s.handleEvents)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler:     s.withLogging(s.withCORS(mux)),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: /events streams for the lifetime of the UI.
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

// withCORS allows the UI shell to call from a different local origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
