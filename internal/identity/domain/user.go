package domain

import (
	"strings"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// User represents an account in the marketplace: a parent, a tutor, or a
// staff member.
type User struct {
	sharedDomain.BaseAggregateRoot
	name  string
	email string
	role  Role
}

// NewUser creates a new user with the given name, email and role.
func NewUser(name, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sharedDomain.InvalidArgumentError("Name must not be empty.")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, sharedDomain.InvalidArgumentErrorf("Invalid email address: %s.", email)
	}

	u := &User{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		email:             email,
		role:              role,
	}

	u.AddDomainEvent(NewUserCreated(u.ID(), name, email, role))

	return u, nil
}

// RehydrateUser recreates a user from persisted state.
func RehydrateUser(entity sharedDomain.BaseEntity, name, email string, role Role) *User {
	return &User{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		name:              name,
		email:             email,
		role:              role,
	}
}

// Getters
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) Role() Role    { return u.role }

// CanResolveRequests reports whether the user may approve or reject
// reschedule requests.
func (u *User) CanResolveRequests() bool { return u.role.IsStaff() }

// OwnsContractOf reports whether the user is the parent on the given
// contract's parent ID.
func (u *User) OwnsContractOf(parentID uuid.UUID) bool {
	return u.role == RoleParent && u.ID() == parentID
}
