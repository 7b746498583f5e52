package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// UpdateSessionStatusCommand contains the data needed to update a session status.
type UpdateSessionStatusCommand struct {
	BookingID     uuid.UUID
	NewStatus     string
	ActingTutorID uuid.UUID
}

// UpdateSessionStatusHandler handles the UpdateSessionStatusCommand.
type UpdateSessionStatusHandler struct {
	sessionRepo domain.SessionRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	now         func() time.Time
}

// NewUpdateSessionStatusHandler creates a new UpdateSessionStatusHandler.
func NewUpdateSessionStatusHandler(sessionRepo domain.SessionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateSessionStatusHandler {
	return &UpdateSessionStatusHandler{
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		now:         time.Now,
	}
}

// Handle executes the UpdateSessionStatusCommand.
func (h *UpdateSessionStatusHandler) Handle(ctx context.Context, cmd UpdateSessionStatusCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		session, err := h.sessionRepo.GetByID(txCtx, cmd.BookingID)
		if err != nil {
			return err
		}

		if !session.IsTaughtBy(cmd.ActingTutorID) {
			return sharedDomain.UnauthorizedError("Only the assigned tutor can update this session.")
		}

		newStatus, err := domain.ParseStatus(cmd.NewStatus)
		if err != nil {
			return err
		}

		if err := session.UpdateStatus(newStatus, h.now()); err != nil {
			return err
		}

		if err := h.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}

		events := session.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.ActingTutorID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
