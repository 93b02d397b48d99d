// Package http exposes the expansion engine as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// Engine defines the interface for the Scribe expansion core.
type Engine interface {
	ports.Expander
	ports.Catalog
	ports.Watchable
}

// ExpandRequest is the body of POST /expand. When Text is set it is expanded
// as the content of Path; otherwise the document at Path is read.
type ExpandRequest struct {
	Path string  `json:"path"`
	Text *string `json:"text,omitempty"`
	Mode string  `json:"mode,omitempty"`
}

// ExpandResponse is the body of a successful POST /expand.
type ExpandResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Server handles the API routes.
type Server struct {
	Engine  Engine
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets a structured logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/expand", server.Expand)
	r.Get("/notes", server.GetNotes)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Expand handles the POST /expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var body ExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		s.logger.Warn("Expand: Invalid request body", "error", err)
		return
	}
	mode, err := domain.ParseContextMode(body.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if body.Text == nil && body.Path == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "path or text is required")
		return
	}

	var out string
	if body.Text != nil {
		out, err = s.Engine.ExpandText(r.Context(), *body.Text, body.Path, mode)
	} else {
		out, err = s.Engine.Expand(r.Context(), body.Path, mode)
	}
	if err != nil {
		status, kind := classify(err)
		writeError(w, status, kind, err.Error())
		s.logger.Error("Expand failed", "path", body.Path, "kind", kind, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, ExpandResponse{Output: out})
}

// GetNotes handles the GET /notes request.
func (s *Server) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.Engine.Notes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		s.logger.Error("Notes failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "scribe-http",
		"version": strings.TrimSpace(scribe.Version),
	})
}

// SubscribeEvents handles the GET /events request (SSE), streaming the path
// of every changed document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusNotImplemented, "unsupported", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// classify maps domain errors to an HTTP status and a stable kind label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTargetNotFound):
		return http.StatusNotFound, "target_not_found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrTargetIsContainer):
		return http.StatusConflict, "target_is_container"
	case errors.Is(err, domain.ErrDepthLimitExceeded):
		return http.StatusUnprocessableEntity, "depth_limit_exceeded"
	case errors.Is(err, domain.ErrUnsupportedEnvironment):
		return http.StatusNotImplemented, "unsupported_environment"
	case errors.Is(err, domain.ErrInvalidAdapter):
		return http.StatusInternalServerError, "invalid_adapter"
	case errors.Is(err, domain.ErrNoActiveView):
		return http.StatusConflict, "no_active_view"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
