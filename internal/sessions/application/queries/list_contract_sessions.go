package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
)

// ListContractSessionsQuery contains the parameters for listing a contract's sessions.
type ListContractSessionsQuery struct {
	ContractID uuid.UUID
}

// ListContractSessionsHandler handles the ListContractSessionsQuery.
type ListContractSessionsHandler struct {
	sessionRepo domain.SessionRepository
}

// NewListContractSessionsHandler creates a new ListContractSessionsHandler.
func NewListContractSessionsHandler(sessionRepo domain.SessionRepository) *ListContractSessionsHandler {
	return &ListContractSessionsHandler{sessionRepo: sessionRepo}
}

// Handle executes the ListContractSessionsQuery.
func (h *ListContractSessionsHandler) Handle(ctx context.Context, query ListContractSessionsQuery) ([]SessionDTO, error) {
	sessions, err := h.sessionRepo.ListByContract(ctx, query.ContractID)
	if err != nil {
		return nil, err
	}

	dtos := make([]SessionDTO, len(sessions))
	for i, session := range sessions {
		dtos[i] = *toSessionDTO(session)
	}
	return dtos, nil
}
