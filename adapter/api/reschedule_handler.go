package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	identityDomain "github.com/tutorlane/tutorlane/internal/identity/domain"
	"github.com/tutorlane/tutorlane/internal/reschedule/application/commands"
	"github.com/tutorlane/tutorlane/internal/reschedule/application/queries"
)

// RescheduleHandler handles reschedule request API requests.
type RescheduleHandler struct {
	createRequest        *commands.CreateRequestHandler
	approveRequest       *commands.ApproveRequestHandler
	rejectRequest        *commands.RejectRequestHandler
	getRequest           *queries.GetRequestHandler
	listContractRequests *queries.ListContractRequestsHandler
	logger               *slog.Logger
}

// RescheduleHandlerConfig holds dependencies for the reschedule handler.
type RescheduleHandlerConfig struct {
	CreateRequest        *commands.CreateRequestHandler
	ApproveRequest       *commands.ApproveRequestHandler
	RejectRequest        *commands.RejectRequestHandler
	GetRequest           *queries.GetRequestHandler
	ListContractRequests *queries.ListContractRequestsHandler
	Logger               *slog.Logger
}

// NewRescheduleHandler creates a new reschedule handler.
func NewRescheduleHandler(cfg RescheduleHandlerConfig) *RescheduleHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &RescheduleHandler{
		createRequest:        cfg.CreateRequest,
		approveRequest:       cfg.ApproveRequest,
		rejectRequest:        cfg.RejectRequest,
		getRequest:           cfg.GetRequest,
		listContractRequests: cfg.ListContractRequests,
		logger:               cfg.Logger,
	}
}

type createRequestBody struct {
	BookingID     string  `json:"booking_id"`
	RequestedDate string  `json:"requested_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Reason        string  `json:"reason"`
	NewTutorID    *string `json:"new_tutor_id,omitempty"`
}

// CreateRequest handles POST /api/v1/reschedule-requests
func (h *RescheduleHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if caller.Role != identityDomain.RoleParent {
		writeError(w, http.StatusForbidden, "Only parents can request reschedules.")
		return
	}

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	bookingID, err := uuid.Parse(body.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking_id.")
		return
	}

	requestedDate, err := time.ParseInLocation("2006-01-02", body.RequestedDate, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, "requested_date must be formatted as YYYY-MM-DD.")
		return
	}

	cmd := commands.CreateRequestCommand{
		ParentID:      caller.ID,
		BookingID:     bookingID,
		RequestedDate: requestedDate,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Reason:        body.Reason,
	}
	if body.NewTutorID != nil {
		tutorID, err := uuid.Parse(*body.NewTutorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid new_tutor_id.")
			return
		}
		cmd.NewTutorID = &tutorID
	}

	result, err := h.createRequest.Handle(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"request_id": result.RequestID.String(),
		"status":     result.Status,
		"message":    result.Message,
	})
}

type approveRequestBody struct {
	NewTutorID *string `json:"new_tutor_id,omitempty"`
}

// ApproveRequest handles POST /api/v1/reschedule-requests/{requestID}/approve
func (h *RescheduleHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if !caller.Role.IsStaff() {
		writeError(w, http.StatusForbidden, "Only staff can resolve reschedule requests.")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID.")
		return
	}

	cmd := commands.ApproveRequestCommand{
		StaffID:   caller.ID,
		RequestID: requestID,
	}

	// Body is optional; staff may pick a different tutor at approval time.
	var body approveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.NewTutorID != nil {
		tutorID, err := uuid.Parse(*body.NewTutorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid new_tutor_id.")
			return
		}
		cmd.NewTutorID = &tutorID
	}

	if err := h.approveRequest.Handle(r.Context(), cmd); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

type rejectRequestBody struct {
	Reason string `json:"reason"`
}

// RejectRequest handles POST /api/v1/reschedule-requests/{requestID}/reject
func (h *RescheduleHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if !caller.Role.IsStaff() {
		writeError(w, http.StatusForbidden, "Only staff can resolve reschedule requests.")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID.")
		return
	}

	var body rejectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	cmd := commands.RejectRequestCommand{
		StaffID:   caller.ID,
		RequestID: requestID,
		Reason:    body.Reason,
	}
	if err := h.rejectRequest.Handle(r.Context(), cmd); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// GetRequest handles GET /api/v1/reschedule-requests/{requestID}
func (h *RescheduleHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(r.PathValue("requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID.")
		return
	}

	dto, err := h.getRequest.Handle(r.Context(), queries.GetRequestQuery{RequestID: requestID})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// ListContractRequests handles GET /api/v1/contracts/{contractID}/reschedule-requests
func (h *RescheduleHandler) ListContractRequests(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(r.PathValue("contractID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract ID.")
		return
	}

	dtos, err := h.listContractRequests.Handle(r.Context(), queries.ListContractRequestsQuery{ContractID: contractID})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": dtos})
}
