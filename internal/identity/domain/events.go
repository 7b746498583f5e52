package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

const (
	AggregateType = "User"

	RoutingKeyUserCreated = "identity.user.created"
)

// UserCreated is emitted when a new user is registered.
type UserCreated struct {
	sharedDomain.BaseEvent
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewUserCreated creates a UserCreated event.
func NewUserCreated(userID uuid.UUID, name, email string, role Role) *UserCreated {
	return &UserCreated{
		BaseEvent: sharedDomain.NewBaseEvent(userID, AggregateType, RoutingKeyUserCreated),
		Name:      name,
		Email:     email,
		Role:      role.String(),
	}
}
