package domain

import (
	"context"

	"github.com/google/uuid"
)

// ContractRepository defines persistence operations for contracts.
type ContractRepository interface {
	// GetByID retrieves a contract by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// GetByIDForUpdate retrieves a contract and locks its row for the
	// remainder of the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Contract, error)

	// Add stores a new contract.
	Add(ctx context.Context, contract *Contract) error

	// Update persists changes to an existing contract.
	Update(ctx context.Context, contract *Contract) error
}
