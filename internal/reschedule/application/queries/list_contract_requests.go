package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
)

// ListContractRequestsQuery contains the parameters for listing a contract's
// reschedule requests.
type ListContractRequestsQuery struct {
	ContractID uuid.UUID
}

// ListContractRequestsHandler handles the ListContractRequestsQuery.
type ListContractRequestsHandler struct {
	requestRepo domain.RequestRepository
}

// NewListContractRequestsHandler creates a new ListContractRequestsHandler.
func NewListContractRequestsHandler(requestRepo domain.RequestRepository) *ListContractRequestsHandler {
	return &ListContractRequestsHandler{requestRepo: requestRepo}
}

// Handle executes the ListContractRequestsQuery.
func (h *ListContractRequestsHandler) Handle(ctx context.Context, query ListContractRequestsQuery) ([]*RequestDTO, error) {
	requests, err := h.requestRepo.ListByContract(ctx, query.ContractID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*RequestDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, toRequestDTO(request))
	}
	return dtos, nil
}
