package domain

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines persistence operations for reschedule requests.
type RequestRepository interface {
	// GetByID retrieves a request by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*RescheduleRequest, error)

	// GetByIDForUpdate retrieves a request and locks its row for the
	// remainder of the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*RescheduleRequest, error)

	// HasPendingForContract reports whether the contract already has a
	// pending request.
	HasPendingForContract(ctx context.Context, contractID uuid.UUID) (bool, error)

	// ListByContract retrieves all requests of a contract, newest first.
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*RescheduleRequest, error)

	// Add stores a new request.
	Add(ctx context.Context, request *RescheduleRequest) error

	// Update persists changes to an existing request.
	Update(ctx context.Context, request *RescheduleRequest) error
}
