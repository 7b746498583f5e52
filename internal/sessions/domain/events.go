package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

const (
	AggregateType = "Session"

	RoutingKeySessionCreated       = "sessions.session.created"
	RoutingKeySessionStatusChanged = "sessions.session.status_changed"
	RoutingKeySessionTutorChanged  = "sessions.session.tutor_changed"
	RoutingKeySessionRescheduled   = "sessions.session.rescheduled"
)

// SessionCreated is emitted when a new session is booked.
type SessionCreated struct {
	sharedDomain.BaseEvent
	ContractID uuid.UUID `json:"contract_id"`
	TutorID    uuid.UUID `json:"tutor_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Mode       string    `json:"mode"`
}

// NewSessionCreated creates a SessionCreated event.
func NewSessionCreated(sessionID, contractID, tutorID uuid.UUID, startsAt, endsAt time.Time, mode Mode) *SessionCreated {
	return &SessionCreated{
		BaseEvent:  sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeySessionCreated),
		ContractID: contractID,
		TutorID:    tutorID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Mode:       mode.String(),
	}
}

// SessionStatusChanged is emitted when a session status transition succeeds.
type SessionStatusChanged struct {
	sharedDomain.BaseEvent
	ContractID uuid.UUID `json:"contract_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
}

// NewSessionStatusChanged creates a SessionStatusChanged event.
func NewSessionStatusChanged(sessionID, contractID uuid.UUID, oldStatus, newStatus Status) *SessionStatusChanged {
	return &SessionStatusChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeySessionStatusChanged),
		ContractID: contractID,
		OldStatus:  oldStatus.String(),
		NewStatus:  newStatus.String(),
	}
}

// SessionTutorChanged is emitted when the assigned tutor is swapped.
type SessionTutorChanged struct {
	sharedDomain.BaseEvent
	ContractID uuid.UUID `json:"contract_id"`
	OldTutorID uuid.UUID `json:"old_tutor_id"`
	NewTutorID uuid.UUID `json:"new_tutor_id"`
}

// NewSessionTutorChanged creates a SessionTutorChanged event.
func NewSessionTutorChanged(sessionID, contractID, oldTutorID, newTutorID uuid.UUID) *SessionTutorChanged {
	return &SessionTutorChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeySessionTutorChanged),
		ContractID: contractID,
		OldTutorID: oldTutorID,
		NewTutorID: newTutorID,
	}
}

// SessionRescheduled is emitted when a session is closed in favor of a
// replacement booking.
type SessionRescheduled struct {
	sharedDomain.BaseEvent
	ContractID    uuid.UUID `json:"contract_id"`
	ReplacementID uuid.UUID `json:"replacement_id"`
	OldStatus     string    `json:"old_status"`
}

// NewSessionRescheduled creates a SessionRescheduled event.
func NewSessionRescheduled(sessionID, contractID, replacementID uuid.UUID, oldStatus Status) *SessionRescheduled {
	return &SessionRescheduled{
		BaseEvent:     sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeySessionRescheduled),
		ContractID:    contractID,
		ReplacementID: replacementID,
		OldStatus:     oldStatus.String(),
	}
}
