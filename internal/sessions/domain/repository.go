package domain

import (
	"context"

	"github.com/google/uuid"
)

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	// GetByID retrieves a session by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// ListByContract retrieves all sessions of a contract ordered by start time.
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*Session, error)

	// Add stores a new session.
	Add(ctx context.Context, session *Session) error

	// Update persists changes to an existing session.
	Update(ctx context.Context, session *Session) error
}
