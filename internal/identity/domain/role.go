package domain

import (
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// Role determines what a user may do in the marketplace.
type Role string

const (
	RoleParent Role = "parent"
	RoleTutor  Role = "tutor"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleParent, RoleTutor, RoleStaff, RoleAdmin:
		return Role(raw), nil
	default:
		return "", sharedDomain.InvalidArgumentErrorf("Unknown role: %s.", raw)
	}
}

func (r Role) String() string { return string(r) }

// IsTutor reports whether the role can be assigned to sessions.
func (r Role) IsTutor() bool { return r == RoleTutor }

// IsStaff reports whether the role can resolve reschedule requests.
func (r Role) IsStaff() bool { return r == RoleStaff || r == RoleAdmin }
