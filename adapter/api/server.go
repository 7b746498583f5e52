// Package api provides the HTTP API for the tutorlane scheduling service.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	"github.com/tutorlane/tutorlane/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	mux        *http.ServeMux
	server     *http.Server
	logger     *slog.Logger
	reschedule *RescheduleHandler
	sessions   *SessionHandler
	health     *observability.HealthRegistry
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, reschedule *RescheduleHandler, sessions *SessionHandler, health *observability.HealthRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if health == nil {
		health = observability.NewHealthRegistry()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:        mux,
		logger:     logger,
		reschedule: reschedule,
		sessions:   sessions,
		health:     health,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Reschedule requests
	s.mux.HandleFunc("POST /api/v1/reschedule-requests", s.reschedule.CreateRequest)
	s.mux.HandleFunc("GET /api/v1/reschedule-requests/{requestID}", s.reschedule.GetRequest)
	s.mux.HandleFunc("POST /api/v1/reschedule-requests/{requestID}/approve", s.reschedule.ApproveRequest)
	s.mux.HandleFunc("POST /api/v1/reschedule-requests/{requestID}/reject", s.reschedule.RejectRequest)
	s.mux.HandleFunc("GET /api/v1/contracts/{contractID}/reschedule-requests", s.reschedule.ListContractRequests)

	// Sessions
	s.mux.HandleFunc("GET /api/v1/sessions/{sessionID}", s.sessions.GetSession)
	s.mux.HandleFunc("PATCH /api/v1/sessions/{sessionID}/status", s.sessions.UpdateStatus)
	s.mux.HandleFunc("PATCH /api/v1/sessions/{sessionID}/tutor", s.sessions.UpdateTutor)
	s.mux.HandleFunc("GET /api/v1/contracts/{contractID}/sessions", s.sessions.ListContractSessions)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.health.Check(r.Context())

	status := http.StatusOK
	if health.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// writeDomainError maps domain error kinds to HTTP status codes.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch sharedDomain.KindOf(err) {
	case sharedDomain.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case sharedDomain.KindUnauthorized:
		writeError(w, http.StatusForbidden, err.Error())
	case sharedDomain.KindInvalidArgument:
		writeError(w, http.StatusBadRequest, err.Error())
	case sharedDomain.KindInvalidState:
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
