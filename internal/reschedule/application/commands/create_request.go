package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
	sessionsDomain "github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// CreateRequestCommand contains the data a parent submits to move a session.
type CreateRequestCommand struct {
	ParentID      uuid.UUID
	BookingID     uuid.UUID
	RequestedDate time.Time
	StartTime     string
	EndTime       string
	Reason        string
	NewTutorID    *uuid.UUID
}

// CreateRequestResult carries the created request's status and a
// confirmation message for the caller.
type CreateRequestResult struct {
	RequestID uuid.UUID
	Status    string
	Message   string
}

// CreateRequestHandler handles the CreateRequestCommand.
type CreateRequestHandler struct {
	requestRepo  domain.RequestRepository
	sessionRepo  sessionsDomain.SessionRepository
	contractRepo contractsDomain.ContractRepository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	now          func() time.Time
}

// NewCreateRequestHandler creates a new CreateRequestHandler.
func NewCreateRequestHandler(
	requestRepo domain.RequestRepository,
	sessionRepo sessionsDomain.SessionRepository,
	contractRepo contractsDomain.ContractRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateRequestHandler {
	return &CreateRequestHandler{
		requestRepo:  requestRepo,
		sessionRepo:  sessionRepo,
		contractRepo: contractRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		now:          time.Now,
	}
}

// Handle executes the CreateRequestCommand. Validation is ordered: first
// failure wins, and the pending-request invariant is re-checked under the
// contract row lock right before the insert.
func (h *CreateRequestHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*CreateRequestResult, error) {
	slot, err := domain.NewSlot(cmd.RequestedDate, cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}

	var result *CreateRequestResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		session, err := h.sessionRepo.GetByID(txCtx, cmd.BookingID)
		if err != nil {
			return err
		}

		if !session.IsOwnedBy(cmd.ParentID) {
			return sharedDomain.UnauthorizedError("You can only reschedule your child's sessions.")
		}

		if session.IsBeforeDate(h.now()) {
			return sharedDomain.InvalidStateError("Cannot reschedule past sessions.")
		}

		pending, err := h.requestRepo.HasPendingForContract(txCtx, session.ContractID())
		if err != nil {
			return err
		}
		if pending {
			return errPendingRequest()
		}

		contract, err := h.contractRepo.GetByIDForUpdate(txCtx, session.ContractID())
		if err != nil {
			return err
		}

		// Re-check under the contract row lock to close the race with a
		// concurrent insert on the same contract.
		pending, err = h.requestRepo.HasPendingForContract(txCtx, contract.ID())
		if err != nil {
			return err
		}
		if pending {
			return errPendingRequest()
		}

		if !contract.HasRescheduleQuota() {
			return sharedDomain.InvalidStateError("You have used all your reschedule attempts for this contract.")
		}

		if !contract.CoversDate(slot.StartsAt()) {
			return sharedDomain.InvalidStateError("The requested date is outside the contract period.")
		}

		request := domain.NewRescheduleRequest(contract.ID(), session.ID(), cmd.ParentID, slot, cmd.NewTutorID, cmd.Reason)
		if err := h.requestRepo.Add(txCtx, request); err != nil {
			return err
		}

		events := request.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.ParentID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &CreateRequestResult{
			RequestID: request.ID(),
			Status:    request.Status().String(),
			Message:   "Your reschedule request has been submitted and is awaiting review.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func errPendingRequest() error {
	return sharedDomain.InvalidStateError("This contract already has a pending reschedule request. Please wait until it is resolved.")
}
