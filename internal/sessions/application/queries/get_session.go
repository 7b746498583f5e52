package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
)

// SessionDTO is a data transfer object for sessions.
type SessionDTO struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	TutorID    uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
	Mode       string
	Status     string
	UpdatedAt  time.Time
}

// GetSessionQuery contains the parameters for getting a session.
type GetSessionQuery struct {
	SessionID uuid.UUID
}

// GetSessionHandler handles the GetSessionQuery.
type GetSessionHandler struct {
	sessionRepo domain.SessionRepository
}

// NewGetSessionHandler creates a new GetSessionHandler.
func NewGetSessionHandler(sessionRepo domain.SessionRepository) *GetSessionHandler {
	return &GetSessionHandler{sessionRepo: sessionRepo}
}

// Handle executes the GetSessionQuery.
func (h *GetSessionHandler) Handle(ctx context.Context, query GetSessionQuery) (*SessionDTO, error) {
	session, err := h.sessionRepo.GetByID(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

func toSessionDTO(session *domain.Session) *SessionDTO {
	return &SessionDTO{
		ID:         session.ID(),
		ContractID: session.ContractID(),
		TutorID:    session.TutorID(),
		StartsAt:   session.StartsAt(),
		EndsAt:     session.EndsAt(),
		Mode:       session.Mode().String(),
		Status:     session.Status().String(),
		UpdatedAt:  session.UpdatedAt(),
	}
}
