package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// Session is one scheduled tutoring occurrence tied to a contract. The
// parent is denormalized from the contract so ownership checks do not need
// a contract lookup.
type Session struct {
	sharedDomain.BaseAggregateRoot
	contractID uuid.UUID
	parentID   uuid.UUID
	tutorID    uuid.UUID
	startsAt   time.Time
	endsAt     time.Time
	mode       Mode
	status     Status
}

// NewSession creates a new scheduled session.
func NewSession(contractID, parentID, tutorID uuid.UUID, startsAt, endsAt time.Time, mode Mode) *Session {
	s := &Session{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		contractID:        contractID,
		parentID:          parentID,
		tutorID:           tutorID,
		startsAt:          startsAt.UTC(),
		endsAt:            endsAt.UTC(),
		mode:              mode,
		status:            StatusScheduled,
	}

	s.AddDomainEvent(NewSessionCreated(s.ID(), contractID, tutorID, s.startsAt, s.endsAt, mode))

	return s
}

// RehydrateSession recreates a session from persisted state.
func RehydrateSession(
	entity sharedDomain.BaseEntity,
	contractID, parentID, tutorID uuid.UUID,
	startsAt, endsAt time.Time,
	mode Mode,
	status Status,
) *Session {
	return &Session{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		contractID:        contractID,
		parentID:          parentID,
		tutorID:           tutorID,
		startsAt:          startsAt,
		endsAt:            endsAt,
		mode:              mode,
		status:            status,
	}
}

// Getters
func (s *Session) ContractID() uuid.UUID { return s.contractID }
func (s *Session) ParentID() uuid.UUID   { return s.parentID }
func (s *Session) TutorID() uuid.UUID    { return s.tutorID }
func (s *Session) StartsAt() time.Time   { return s.startsAt }
func (s *Session) EndsAt() time.Time     { return s.endsAt }
func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) Status() Status        { return s.status }

// IsTaughtBy reports whether the given tutor is currently assigned.
func (s *Session) IsTaughtBy(tutorID uuid.UUID) bool {
	return s.tutorID == tutorID
}

// IsOwnedBy reports whether the given parent owns this session's contract.
func (s *Session) IsOwnedBy(parentID uuid.UUID) bool {
	return s.parentID == parentID
}

// IsOnDate reports whether the session falls on the given calendar date (UTC).
func (s *Session) IsOnDate(date time.Time) bool {
	sy, sm, sd := s.startsAt.UTC().Date()
	dy, dm, dd := date.UTC().Date()
	return sy == dy && sm == dm && sd == dd
}

// IsBeforeDate reports whether the session's calendar date precedes the
// given date (UTC).
func (s *Session) IsBeforeDate(date time.Time) bool {
	sy, sm, sd := s.startsAt.UTC().Date()
	dy, dm, dd := date.UTC().Date()
	sessionDay := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return sessionDay.Before(day)
}

// UpdateStatus overwrites the session status. Transitions are only allowed
// on the day of the session and never out of a terminal status. Setting the
// current status again is a valid update and still touches the timestamp.
func (s *Session) UpdateStatus(newStatus Status, today time.Time) error {
	if !s.IsOnDate(today) {
		return sharedDomain.InvalidStateError("Session status can only be updated on the day of the session.")
	}
	if s.status.IsTerminal() {
		return sharedDomain.InvalidStateErrorf("Cannot update a %s session.", s.status)
	}

	oldStatus := s.status
	s.status = newStatus
	s.Touch()

	s.AddDomainEvent(NewSessionStatusChanged(s.ID(), s.contractID, oldStatus, newStatus))

	return nil
}

// ReassignTutor swaps the assigned tutor. Blocked once the session has
// reached a terminal status.
func (s *Session) ReassignTutor(newTutorID uuid.UUID) error {
	if s.status.IsTerminal() {
		return sharedDomain.InvalidStateErrorf("Cannot reassign the tutor of a %s session.", s.status)
	}

	oldTutorID := s.tutorID
	s.tutorID = newTutorID
	s.Touch()

	s.AddDomainEvent(NewSessionTutorChanged(s.ID(), s.contractID, oldTutorID, newTutorID))

	return nil
}

// MarkRescheduled closes the session in favor of its replacement.
func (s *Session) MarkRescheduled(replacementID uuid.UUID) error {
	if s.status.IsTerminal() {
		return sharedDomain.InvalidStateErrorf("Cannot update a %s session.", s.status)
	}

	oldStatus := s.status
	s.status = StatusRescheduled
	s.Touch()

	s.AddDomainEvent(NewSessionRescheduled(s.ID(), s.contractID, replacementID, oldStatus))

	return nil
}
