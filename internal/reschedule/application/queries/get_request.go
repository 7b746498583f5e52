package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
)

// RequestDTO is a data transfer object for reschedule requests.
type RequestDTO struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	SessionID   uuid.UUID
	RequestedBy uuid.UUID
	NewStartsAt time.Time
	NewEndsAt   time.Time
	NewTutorID  *uuid.UUID
	Status      string
	Reason      string
	ResolvedBy  *uuid.UUID
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

// GetRequestQuery contains the parameters for getting a reschedule request.
type GetRequestQuery struct {
	RequestID uuid.UUID
}

// GetRequestHandler handles the GetRequestQuery.
type GetRequestHandler struct {
	requestRepo domain.RequestRepository
}

// NewGetRequestHandler creates a new GetRequestHandler.
func NewGetRequestHandler(requestRepo domain.RequestRepository) *GetRequestHandler {
	return &GetRequestHandler{requestRepo: requestRepo}
}

// Handle executes the GetRequestQuery.
func (h *GetRequestHandler) Handle(ctx context.Context, query GetRequestQuery) (*RequestDTO, error) {
	request, err := h.requestRepo.GetByID(ctx, query.RequestID)
	if err != nil {
		return nil, err
	}
	return toRequestDTO(request), nil
}

func toRequestDTO(request *domain.RescheduleRequest) *RequestDTO {
	return &RequestDTO{
		ID:          request.ID(),
		ContractID:  request.ContractID(),
		SessionID:   request.SessionID(),
		RequestedBy: request.RequestedBy(),
		NewStartsAt: request.Slot().StartsAt(),
		NewEndsAt:   request.Slot().EndsAt(),
		NewTutorID:  request.NewTutorID(),
		Status:      request.Status().String(),
		Reason:      request.Reason(),
		ResolvedBy:  request.ResolvedBy(),
		ResolvedAt:  request.ResolvedAt(),
		CreatedAt:   request.CreatedAt(),
	}
}
