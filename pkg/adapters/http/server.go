// Package http exposes the advisor as a JSON API. The host owns the
// listener; this package only builds the handler.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cnckit/cutmode/internal/logging"
	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Engine defines the slice of the cutmode core the API needs.
type Engine interface {
	Start(ctx context.Context, sessionID string) (*domain.Reply, error)
	Advance(ctx context.Context, sessionID, input string) (*domain.Reply, error)
	Catalog() *catalog.Catalog
}

// Server wires the engine into chi routes.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request-level errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/sessions/{sessionID}/start", s.start)
	r.Post("/sessions/{sessionID}/advance", s.advance)
	r.Get("/catalog", s.catalog)
	r.Get("/healthz", s.health)
	return r
}

// advanceRequest is the body of POST /sessions/{sessionID}/advance.
type advanceRequest struct {
	Input string `json:"input"`
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	reply, err := s.engine.Start(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("start failed", "session", sessionID, "err", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, reply)
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("advance: invalid request body", "session", sessionID, "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := s.engine.Advance(r.Context(), sessionID, body.Input)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		s.logger.Error("advance failed", "session", sessionID, "err", err)
		http.Error(w, "failed to advance session", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, reply)
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string][]string{"paths": s.engine.Catalog().Paths()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
