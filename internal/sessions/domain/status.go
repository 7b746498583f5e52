package domain

import (
	"strings"

	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusProcessing  Status = "processing"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// ParseStatus validates a raw status string. Matching is case-insensitive
// and the result is normalized to lowercase.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(raw)) {
	case StatusScheduled, StatusProcessing, StatusCompleted, StatusCancelled, StatusRescheduled:
		return Status(strings.ToLower(raw)), nil
	default:
		return "", sharedDomain.InvalidArgumentErrorf(
			"Status must be one of: scheduled, processing, completed, cancelled, rescheduled. Got: %s.", raw)
	}
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether no further transition is permitted out of s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
