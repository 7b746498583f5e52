package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns a not-found error if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Add stores a new user.
	Add(ctx context.Context, user *User) error
}
