package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

type rejectFixture struct {
	requestRepo *mockRequestRepo
	outboxRepo  *mockOutboxRepo
	uow         *mockUnitOfWork
	handler     *RejectRequestHandler
	ctx         context.Context
	txCtx       context.Context
}

func newRejectFixture() *rejectFixture {
	f := &rejectFixture{
		requestRepo: new(mockRequestRepo),
		outboxRepo:  new(mockOutboxRepo),
		uow:         new(mockUnitOfWork),
	}
	f.handler = NewRejectRequestHandler(f.requestRepo, f.outboxRepo, f.uow)
	f.ctx = context.Background()
	f.txCtx = txContext(f.ctx)
	return f
}

func (f *rejectFixture) expectTx(commit bool) {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil)
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil)
	}
}

func TestRejectRequestHandler_Handle(t *testing.T) {
	parentID := uuid.New()
	staffID := uuid.New()

	t.Run("rejects a pending request with a reason", func(t *testing.T) {
		f := newRejectFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)
		request := pendingRequestFor(session)

		f.expectTx(true)
		f.requestRepo.On("GetByIDForUpdate", f.txCtx, request.ID()).Return(request, nil)
		f.requestRepo.On("Update", f.txCtx, request).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := f.handler.Handle(f.ctx, RejectRequestCommand{
			StaffID:   staffID,
			RequestID: request.ID(),
			Reason:    "Tutor busy",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusRejected, request.Status())
		assert.Equal(t, "Tutor busy", request.Reason())
		require.NotNil(t, request.ResolvedBy())
		assert.Equal(t, staffID, *request.ResolvedBy())
		assert.NotNil(t, request.ResolvedAt())

		f.requestRepo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("fails InvalidState on a resolved request", func(t *testing.T) {
		f := newRejectFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)
		request := pendingRequestFor(session)
		require.NoError(t, request.Reject(uuid.New(), "first rejection"))

		f.expectTx(false)
		f.requestRepo.On("GetByIDForUpdate", f.txCtx, request.ID()).Return(request, nil)

		err := f.handler.Handle(f.ctx, RejectRequestCommand{
			StaffID:   staffID,
			RequestID: request.ID(),
			Reason:    "second rejection",
		})

		require.Error(t, err)
		assert.Equal(t, "Only pending requests can be rejected.", err.Error())
		assert.Equal(t, "first rejection", request.Reason())
		f.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("fails NotFound when the request is missing", func(t *testing.T) {
		f := newRejectFixture()
		requestID := uuid.New()

		f.expectTx(false)
		f.requestRepo.On("GetByIDForUpdate", f.txCtx, requestID).Return(nil, sharedDomain.NotFoundError("Reschedule request not found."))

		err := f.handler.Handle(f.ctx, RejectRequestCommand{StaffID: staffID, RequestID: requestID, Reason: "n/a"})

		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindNotFound, sharedDomain.KindOf(err))
	})
}
