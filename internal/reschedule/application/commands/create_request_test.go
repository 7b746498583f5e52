package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	sessionsDomain "github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

var (
	testToday     = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	sessionStart  = time.Date(2026, 8, 25, 16, 0, 0, 0, time.UTC)
	requestedDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
)

type createFixture struct {
	requestRepo  *mockRequestRepo
	sessionRepo  *mockSessionRepo
	contractRepo *mockContractRepo
	outboxRepo   *mockOutboxRepo
	uow          *mockUnitOfWork
	handler      *CreateRequestHandler
	ctx          context.Context
	txCtx        context.Context
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		requestRepo:  new(mockRequestRepo),
		sessionRepo:  new(mockSessionRepo),
		contractRepo: new(mockContractRepo),
		outboxRepo:   new(mockOutboxRepo),
		uow:          new(mockUnitOfWork),
	}
	f.handler = NewCreateRequestHandler(f.requestRepo, f.sessionRepo, f.contractRepo, f.outboxRepo, f.uow)
	f.handler.now = func() time.Time { return testToday }
	f.ctx = context.Background()
	f.txCtx = txContext(f.ctx)
	return f
}

func (f *createFixture) expectTx(commit bool) {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil)
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil)
	}
}

func testContract(parentID uuid.UUID, remaining int) *contractsDomain.Contract {
	now := time.Now()
	entity := sharedDomain.RehydrateBaseEntity(uuid.New(), now, now)
	return contractsDomain.RehydrateContract(entity, parentID, uuid.New(), nil, nil,
		contractsDomain.Package{Name: "standard-8", SessionCount: 8, MaxReschedule: 3, SlotDuration: 90 * time.Minute},
		remaining, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "active")
}

func testSession(contract *contractsDomain.Contract, startsAt time.Time) *sessionsDomain.Session {
	now := time.Now()
	entity := sharedDomain.RehydrateBaseEntity(uuid.New(), now, now)
	return sessionsDomain.RehydrateSession(entity, contract.ID(), contract.ParentID(), contract.MainTutorID(),
		startsAt, startsAt.Add(90*time.Minute), sessionsDomain.ModeOnline, sessionsDomain.StatusScheduled)
}

func validCommand(parentID, bookingID uuid.UUID) CreateRequestCommand {
	return CreateRequestCommand{
		ParentID:      parentID,
		BookingID:     bookingID,
		RequestedDate: requestedDate,
		StartTime:     "16:00",
		EndTime:       "17:30",
		Reason:        "conflict with school event",
	}
}

func TestCreateRequestHandler_Handle(t *testing.T) {
	parentID := uuid.New()

	t.Run("creates a pending request", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)

		f.expectTx(true)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(false, nil).Twice()
		f.contractRepo.On("GetByIDForUpdate", f.txCtx, contract.ID()).Return(contract, nil)
		f.requestRepo.On("Add", f.txCtx, mock.AnythingOfType("*domain.RescheduleRequest")).Return(nil)
		f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.NoError(t, err)
		assert.Equal(t, "pending", result.Status)
		assert.NotEqual(t, uuid.Nil, result.RequestID)
		assert.NotEmpty(t, result.Message)

		f.requestRepo.AssertExpectations(t)
		f.contractRepo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("fails InvalidArgument on a bad slot start before any lookup", func(t *testing.T) {
		f := newCreateFixture()

		cmd := validCommand(parentID, uuid.New())
		cmd.StartTime = "15:00"
		cmd.EndTime = "16:30"

		_, err := f.handler.Handle(f.ctx, cmd)

		require.Error(t, err)
		assert.Equal(t, "Start time must be 16:00, 17:30, 19:00, or 20:30.", err.Error())
		f.sessionRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("fails InvalidArgument naming the required end time", func(t *testing.T) {
		f := newCreateFixture()

		cmd := validCommand(parentID, uuid.New())
		cmd.StartTime = "19:00"
		cmd.EndTime = "21:00"

		_, err := f.handler.Handle(f.ctx, cmd)

		require.Error(t, err)
		assert.Equal(t, "End time must be 20:30.", err.Error())
	})

	t.Run("fails NotFound when the session is missing", func(t *testing.T) {
		f := newCreateFixture()
		bookingID := uuid.New()

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, bookingID).Return(nil, sharedDomain.NotFoundError("Session not found."))

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, bookingID))

		require.Error(t, err)
		assert.Equal(t, "Session not found.", err.Error())
	})

	t.Run("fails Unauthorized for a different parent", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(uuid.New(), 2)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindUnauthorized, sharedDomain.KindOf(err))
		assert.Equal(t, "You can only reschedule your child's sessions.", err.Error())
	})

	t.Run("fails InvalidState for past sessions", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, testToday.AddDate(0, 0, -3))

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Equal(t, "Cannot reschedule past sessions.", err.Error())
	})

	t.Run("fails InvalidState when a pending request already exists", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(true, nil).Once()

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidState, sharedDomain.KindOf(err))
		assert.Contains(t, err.Error(), "pending reschedule request")
		f.contractRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("re-checks the pending invariant under the contract lock", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		// First check clean, second check (under lock) sees a racing insert.
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(false, nil).Once()
		f.contractRepo.On("GetByIDForUpdate", f.txCtx, contract.ID()).Return(contract, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(true, nil).Once()

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidState, sharedDomain.KindOf(err))
		f.requestRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("fails NotFound when the contract is missing", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(false, nil)
		f.contractRepo.On("GetByIDForUpdate", f.txCtx, contract.ID()).Return(nil, sharedDomain.NotFoundError("Contract not found."))

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Equal(t, "Contract not found.", err.Error())
	})

	t.Run("fails InvalidState when the quota is exhausted", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 0)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(false, nil).Twice()
		f.contractRepo.On("GetByIDForUpdate", f.txCtx, contract.ID()).Return(contract, nil)

		_, err := f.handler.Handle(f.ctx, validCommand(parentID, session.ID()))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "used all your reschedule attempts")
	})

	t.Run("fails InvalidState when the date is past the contract end", func(t *testing.T) {
		f := newCreateFixture()
		contract := testContract(parentID, 2)
		session := testSession(contract, sessionStart)

		f.expectTx(false)
		f.sessionRepo.On("GetByID", f.txCtx, session.ID()).Return(session, nil)
		f.requestRepo.On("HasPendingForContract", f.txCtx, contract.ID()).Return(false, nil).Twice()
		f.contractRepo.On("GetByIDForUpdate", f.txCtx, contract.ID()).Return(contract, nil)

		cmd := validCommand(parentID, session.ID())
		cmd.RequestedDate = time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)

		_, err := f.handler.Handle(f.ctx, cmd)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside the contract period")
	})
}
