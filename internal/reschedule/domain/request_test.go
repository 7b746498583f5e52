package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

func newPendingRequest() *RescheduleRequest {
	slot, _ := NewSlot(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "16:00", "17:30")
	return NewRescheduleRequest(uuid.New(), uuid.New(), uuid.New(), slot, nil, "conflict with school event")
}

func TestNewRescheduleRequest(t *testing.T) {
	r := newPendingRequest()

	assert.Equal(t, RequestStatusPending, r.Status())
	assert.Nil(t, r.ResolvedBy())
	assert.Nil(t, r.ResolvedAt())

	events := r.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, RoutingKeyRequestCreated, events[0].RoutingKey())
}

func TestApprove(t *testing.T) {
	t.Run("approves a pending request and records the staff member", func(t *testing.T) {
		r := newPendingRequest()
		r.ClearDomainEvents()
		staffID := uuid.New()

		err := r.Approve(staffID)
		require.NoError(t, err)

		assert.Equal(t, RequestStatusApproved, r.Status())
		require.NotNil(t, r.ResolvedBy())
		assert.Equal(t, staffID, *r.ResolvedBy())
		assert.NotNil(t, r.ResolvedAt())

		events := r.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, RoutingKeyRequestApproved, events[0].RoutingKey())
	})

	t.Run("rejects double approval", func(t *testing.T) {
		r := newPendingRequest()
		require.NoError(t, r.Approve(uuid.New()))

		err := r.Approve(uuid.New())
		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidState, sharedDomain.KindOf(err))
		assert.Equal(t, "Only pending requests can be approved.", err.Error())
	})

	t.Run("cannot approve a rejected request", func(t *testing.T) {
		r := newPendingRequest()
		require.NoError(t, r.Reject(uuid.New(), "tutor busy"))

		err := r.Approve(uuid.New())
		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidState, sharedDomain.KindOf(err))
	})
}

func TestReject(t *testing.T) {
	t.Run("rejects a pending request with a reason", func(t *testing.T) {
		r := newPendingRequest()
		r.ClearDomainEvents()
		staffID := uuid.New()

		err := r.Reject(staffID, "Tutor busy")
		require.NoError(t, err)

		assert.Equal(t, RequestStatusRejected, r.Status())
		assert.Equal(t, "Tutor busy", r.Reason())
		require.NotNil(t, r.ResolvedBy())
		assert.Equal(t, staffID, *r.ResolvedBy())

		events := r.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, RoutingKeyRequestRejected, events[0].RoutingKey())
	})

	t.Run("cannot reject twice", func(t *testing.T) {
		r := newPendingRequest()
		require.NoError(t, r.Reject(uuid.New(), "first"))

		err := r.Reject(uuid.New(), "second")
		require.Error(t, err)
		assert.Equal(t, "Only pending requests can be rejected.", err.Error())
	})
}
