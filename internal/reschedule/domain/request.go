package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// RequestStatus is the lifecycle state of a reschedule request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) String() string { return string(s) }

// RescheduleRequest is a parent's petition to move a session to a new slot.
// It is created pending, transitions exactly once to approved or rejected,
// and is immutable thereafter.
type RescheduleRequest struct {
	sharedDomain.BaseAggregateRoot
	contractID  uuid.UUID
	sessionID   uuid.UUID
	requestedBy uuid.UUID
	slot        Slot
	newTutorID  *uuid.UUID
	status      RequestStatus
	reason      string
	resolvedBy  *uuid.UUID
	resolvedAt  *time.Time
}

// NewRescheduleRequest creates a pending request.
func NewRescheduleRequest(contractID, sessionID, requestedBy uuid.UUID, slot Slot, newTutorID *uuid.UUID, reason string) *RescheduleRequest {
	r := &RescheduleRequest{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		contractID:        contractID,
		sessionID:         sessionID,
		requestedBy:       requestedBy,
		slot:              slot,
		newTutorID:        newTutorID,
		status:            RequestStatusPending,
		reason:            reason,
	}

	r.AddDomainEvent(NewRequestCreated(r.ID(), contractID, sessionID, requestedBy, slot.StartsAt(), slot.EndsAt()))

	return r
}

// RehydrateRescheduleRequest recreates a request from persisted state.
func RehydrateRescheduleRequest(
	entity sharedDomain.BaseEntity,
	contractID, sessionID, requestedBy uuid.UUID,
	slot Slot,
	newTutorID *uuid.UUID,
	status RequestStatus,
	reason string,
	resolvedBy *uuid.UUID,
	resolvedAt *time.Time,
) *RescheduleRequest {
	return &RescheduleRequest{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		contractID:        contractID,
		sessionID:         sessionID,
		requestedBy:       requestedBy,
		slot:              slot,
		newTutorID:        newTutorID,
		status:            status,
		reason:            reason,
		resolvedBy:        resolvedBy,
		resolvedAt:        resolvedAt,
	}
}

// Getters
func (r *RescheduleRequest) ContractID() uuid.UUID  { return r.contractID }
func (r *RescheduleRequest) SessionID() uuid.UUID   { return r.sessionID }
func (r *RescheduleRequest) RequestedBy() uuid.UUID { return r.requestedBy }
func (r *RescheduleRequest) Slot() Slot             { return r.slot }
func (r *RescheduleRequest) NewTutorID() *uuid.UUID { return r.newTutorID }
func (r *RescheduleRequest) Status() RequestStatus  { return r.status }
func (r *RescheduleRequest) Reason() string         { return r.reason }
func (r *RescheduleRequest) ResolvedBy() *uuid.UUID { return r.resolvedBy }
func (r *RescheduleRequest) ResolvedAt() *time.Time { return r.resolvedAt }

// Approve transitions the request to approved. Only pending requests can be
// approved; this guard is the sole safety net against double-decrementing
// the contract quota, so it must run under the same lock as the decrement.
func (r *RescheduleRequest) Approve(staffID uuid.UUID) error {
	if r.status != RequestStatusPending {
		return sharedDomain.InvalidStateError("Only pending requests can be approved.")
	}

	now := time.Now().UTC()
	r.status = RequestStatusApproved
	r.resolvedBy = &staffID
	r.resolvedAt = &now
	r.Touch()

	r.AddDomainEvent(NewRequestApproved(r.ID(), r.contractID, r.sessionID, staffID))

	return nil
}

// Reject transitions the request to rejected with a reason.
func (r *RescheduleRequest) Reject(staffID uuid.UUID, reason string) error {
	if r.status != RequestStatusPending {
		return sharedDomain.InvalidStateError("Only pending requests can be rejected.")
	}

	now := time.Now().UTC()
	r.status = RequestStatusRejected
	r.reason = reason
	r.resolvedBy = &staffID
	r.resolvedAt = &now
	r.Touch()

	r.AddDomainEvent(NewRequestRejected(r.ID(), r.contractID, r.sessionID, staffID, reason))

	return nil
}
