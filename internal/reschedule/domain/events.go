package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

const (
	AggregateType = "RescheduleRequest"

	RoutingKeyRequestCreated  = "reschedule.request.created"
	RoutingKeyRequestApproved = "reschedule.request.approved"
	RoutingKeyRequestRejected = "reschedule.request.rejected"
)

// RequestCreated is emitted when a parent submits a reschedule request.
type RequestCreated struct {
	sharedDomain.BaseEvent
	ContractID  uuid.UUID `json:"contract_id"`
	SessionID   uuid.UUID `json:"session_id"`
	RequestedBy uuid.UUID `json:"requested_by"`
	NewStartsAt time.Time `json:"new_starts_at"`
	NewEndsAt   time.Time `json:"new_ends_at"`
}

// NewRequestCreated creates a RequestCreated event.
func NewRequestCreated(requestID, contractID, sessionID, requestedBy uuid.UUID, newStartsAt, newEndsAt time.Time) *RequestCreated {
	return &RequestCreated{
		BaseEvent:   sharedDomain.NewBaseEvent(requestID, AggregateType, RoutingKeyRequestCreated),
		ContractID:  contractID,
		SessionID:   sessionID,
		RequestedBy: requestedBy,
		NewStartsAt: newStartsAt,
		NewEndsAt:   newEndsAt,
	}
}

// RequestApproved is emitted when staff approve a reschedule request.
type RequestApproved struct {
	sharedDomain.BaseEvent
	ContractID uuid.UUID `json:"contract_id"`
	SessionID  uuid.UUID `json:"session_id"`
	StaffID    uuid.UUID `json:"staff_id"`
}

// NewRequestApproved creates a RequestApproved event.
func NewRequestApproved(requestID, contractID, sessionID, staffID uuid.UUID) *RequestApproved {
	return &RequestApproved{
		BaseEvent:  sharedDomain.NewBaseEvent(requestID, AggregateType, RoutingKeyRequestApproved),
		ContractID: contractID,
		SessionID:  sessionID,
		StaffID:    staffID,
	}
}

// RequestRejected is emitted when staff reject a reschedule request.
type RequestRejected struct {
	sharedDomain.BaseEvent
	ContractID uuid.UUID `json:"contract_id"`
	SessionID  uuid.UUID `json:"session_id"`
	StaffID    uuid.UUID `json:"staff_id"`
	Reason     string    `json:"reason"`
}

// NewRequestRejected creates a RequestRejected event.
func NewRequestRejected(requestID, contractID, sessionID, staffID uuid.UUID, reason string) *RequestRejected {
	return &RequestRejected{
		BaseEvent:  sharedDomain.NewBaseEvent(requestID, AggregateType, RoutingKeyRequestRejected),
		ContractID: contractID,
		SessionID:  sessionID,
		StaffID:    staffID,
		Reason:     reason,
	}
}
