package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// RejectRequestCommand contains the data staff submit to reject a request.
type RejectRequestCommand struct {
	StaffID   uuid.UUID
	RequestID uuid.UUID
	Reason    string
}

// RejectRequestHandler handles the RejectRequestCommand. Rejection touches
// the request alone; the original session and contract stay untouched.
type RejectRequestHandler struct {
	requestRepo domain.RequestRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewRejectRequestHandler creates a new RejectRequestHandler.
func NewRejectRequestHandler(requestRepo domain.RequestRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RejectRequestHandler {
	return &RejectRequestHandler{
		requestRepo: requestRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the RejectRequestCommand.
func (h *RejectRequestHandler) Handle(ctx context.Context, cmd RejectRequestCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		request, err := h.requestRepo.GetByIDForUpdate(txCtx, cmd.RequestID)
		if err != nil {
			return err
		}

		if err := request.Reject(cmd.StaffID, cmd.Reason); err != nil {
			return err
		}

		if err := h.requestRepo.Update(txCtx, request); err != nil {
			return err
		}

		events := request.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.StaffID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
