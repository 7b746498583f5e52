package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	identityDomain "github.com/tutorlane/tutorlane/internal/identity/domain"
	"github.com/tutorlane/tutorlane/internal/sessions/application/commands"
	"github.com/tutorlane/tutorlane/internal/sessions/application/queries"
)

// SessionHandler handles session API requests.
type SessionHandler struct {
	updateStatus         *commands.UpdateSessionStatusHandler
	updateTutor          *commands.UpdateSessionTutorHandler
	getSession           *queries.GetSessionHandler
	listContractSessions *queries.ListContractSessionsHandler
	logger               *slog.Logger
}

// SessionHandlerConfig holds dependencies for the session handler.
type SessionHandlerConfig struct {
	UpdateStatus         *commands.UpdateSessionStatusHandler
	UpdateTutor          *commands.UpdateSessionTutorHandler
	GetSession           *queries.GetSessionHandler
	ListContractSessions *queries.ListContractSessionsHandler
	Logger               *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(cfg SessionHandlerConfig) *SessionHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SessionHandler{
		updateStatus:         cfg.UpdateStatus,
		updateTutor:          cfg.UpdateTutor,
		getSession:           cfg.GetSession,
		listContractSessions: cfg.ListContractSessions,
		logger:               cfg.Logger,
	}
}

type updateStatusBody struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/sessions/{sessionID}/status
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if caller.Role != identityDomain.RoleTutor {
		writeError(w, http.StatusForbidden, "Only tutors can update session status.")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	cmd := commands.UpdateSessionStatusCommand{
		BookingID:     sessionID,
		NewStatus:     body.Status,
		ActingTutorID: caller.ID,
	}
	if err := h.updateStatus.Handle(r.Context(), cmd); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

type updateTutorBody struct {
	NewTutorID string `json:"new_tutor_id"`
}

// UpdateTutor handles PATCH /api/v1/sessions/{sessionID}/tutor
func (h *SessionHandler) UpdateTutor(w http.ResponseWriter, r *http.Request) {
	caller, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if !caller.Role.IsStaff() {
		writeError(w, http.StatusForbidden, "Only staff can reassign session tutors.")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	var body updateTutorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	newTutorID, err := uuid.Parse(body.NewTutorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid new_tutor_id.")
		return
	}

	cmd := commands.UpdateSessionTutorCommand{
		BookingID:    sessionID,
		NewTutorID:   newTutorID,
		ActingUserID: caller.ID,
	}
	if err := h.updateTutor.Handle(r.Context(), cmd); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"tutor_id": body.NewTutorID})
}

// GetSession handles GET /api/v1/sessions/{sessionID}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	dto, err := h.getSession.Handle(r.Context(), queries.GetSessionQuery{SessionID: sessionID})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// ListContractSessions handles GET /api/v1/contracts/{contractID}/sessions
func (h *SessionHandler) ListContractSessions(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(r.PathValue("contractID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract ID.")
		return
	}

	dtos, err := h.listContractSessions.Handle(r.Context(), queries.ListContractSessionsQuery{ContractID: contractID})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": dtos})
}
