package commands

import (
	"context"

	"github.com/google/uuid"
	availabilityDomain "github.com/tutorlane/tutorlane/internal/availability/domain"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// UpdateSessionTutorCommand contains the data needed to reassign a session's tutor.
type UpdateSessionTutorCommand struct {
	BookingID    uuid.UUID
	NewTutorID   uuid.UUID
	ActingUserID uuid.UUID
}

// UpdateSessionTutorHandler handles the UpdateSessionTutorCommand. This is
// the narrow reassignment path that swaps the tutor on a still-open session
// without going through the reschedule-request workflow.
type UpdateSessionTutorHandler struct {
	sessionRepo  domain.SessionRepository
	contractRepo contractsDomain.ContractRepository
	oracle       availabilityDomain.Oracle
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
}

// NewUpdateSessionTutorHandler creates a new UpdateSessionTutorHandler.
func NewUpdateSessionTutorHandler(
	sessionRepo domain.SessionRepository,
	contractRepo contractsDomain.ContractRepository,
	oracle availabilityDomain.Oracle,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *UpdateSessionTutorHandler {
	return &UpdateSessionTutorHandler{
		sessionRepo:  sessionRepo,
		contractRepo: contractRepo,
		oracle:       oracle,
		outboxRepo:   outboxRepo,
		uow:          uow,
	}
}

// Handle executes the UpdateSessionTutorCommand.
func (h *UpdateSessionTutorHandler) Handle(ctx context.Context, cmd UpdateSessionTutorCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		session, err := h.sessionRepo.GetByID(txCtx, cmd.BookingID)
		if err != nil {
			return err
		}

		contract, err := h.contractRepo.GetByID(txCtx, session.ContractID())
		if err != nil {
			if sharedDomain.KindOf(err) == sharedDomain.KindNotFound {
				return sharedDomain.InvalidStateError("Session contract not found.")
			}
			return err
		}

		if !contract.IsAllowedTutor(cmd.NewTutorID) {
			return sharedDomain.InvalidArgumentError("New tutor must be the contract's main tutor or one of its substitutes.")
		}

		if err := session.ReassignTutor(cmd.NewTutorID); err != nil {
			return err
		}

		available, err := h.oracle.IsTutorAvailable(txCtx, cmd.NewTutorID, session.StartsAt(), session.EndsAt())
		if err != nil {
			return err
		}
		if !available {
			return sharedDomain.InvalidStateError("The selected tutor is not available at the requested time.")
		}

		if err := h.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}

		events := session.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.ActingUserID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
