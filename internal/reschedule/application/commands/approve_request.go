package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	availabilityDomain "github.com/tutorlane/tutorlane/internal/availability/domain"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	identityDomain "github.com/tutorlane/tutorlane/internal/identity/domain"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
	sessionsDomain "github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedApplication "github.com/tutorlane/tutorlane/internal/shared/application"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/locking"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// approvalLockTTL bounds how long a crashed approval can hold the
// per-contract mutex.
const approvalLockTTL = 10 * time.Second

// ApproveRequestCommand contains the data staff submit to approve a request.
type ApproveRequestCommand struct {
	StaffID    uuid.UUID
	RequestID  uuid.UUID
	NewTutorID *uuid.UUID
}

// ApproveRequestHandler handles the ApproveRequestCommand. Approval applies
// four writes as one atomic unit: insert the replacement session, mark the
// original rescheduled, decrement the contract quota, and flip the request
// to approved.
type ApproveRequestHandler struct {
	requestRepo  domain.RequestRepository
	sessionRepo  sessionsDomain.SessionRepository
	contractRepo contractsDomain.ContractRepository
	userRepo     identityDomain.UserRepository
	oracle       availabilityDomain.Oracle
	mutex        locking.Mutex
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
}

// NewApproveRequestHandler creates a new ApproveRequestHandler.
func NewApproveRequestHandler(
	requestRepo domain.RequestRepository,
	sessionRepo sessionsDomain.SessionRepository,
	contractRepo contractsDomain.ContractRepository,
	userRepo identityDomain.UserRepository,
	oracle availabilityDomain.Oracle,
	mutex locking.Mutex,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *ApproveRequestHandler {
	return &ApproveRequestHandler{
		requestRepo:  requestRepo,
		sessionRepo:  sessionRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
		oracle:       oracle,
		mutex:        mutex,
		outboxRepo:   outboxRepo,
		uow:          uow,
	}
}

// Handle executes the ApproveRequestCommand.
func (h *ApproveRequestHandler) Handle(ctx context.Context, cmd ApproveRequestCommand) error {
	// A plain read resolves the contract for the lock key; the authoritative
	// pending check happens again under the row lock inside the transaction.
	request, err := h.requestRepo.GetByID(ctx, cmd.RequestID)
	if err != nil {
		return err
	}

	release, err := h.mutex.Acquire(ctx, approvalLockKey(request.ContractID()), approvalLockTTL)
	if err != nil {
		if err == locking.ErrNotAcquired {
			return sharedDomain.InvalidStateError("Another change on this contract is in progress. Please retry.")
		}
		return err
	}
	defer release()

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		request, err := h.requestRepo.GetByIDForUpdate(txCtx, cmd.RequestID)
		if err != nil {
			return err
		}

		if request.Status() != domain.RequestStatusPending {
			return sharedDomain.InvalidStateError("Only pending requests can be approved.")
		}

		session, err := h.sessionRepo.GetByID(txCtx, request.SessionID())
		if err != nil {
			return err
		}

		tutorID := session.TutorID()
		newTutorID := cmd.NewTutorID
		if newTutorID == nil {
			newTutorID = request.NewTutorID()
		}
		if newTutorID != nil {
			tutor, err := h.userRepo.GetByID(txCtx, *newTutorID)
			if err != nil {
				if sharedDomain.KindOf(err) == sharedDomain.KindNotFound {
					return sharedDomain.NotFoundError("Tutor not found.")
				}
				return err
			}
			if !tutor.Role().IsTutor() {
				return sharedDomain.InvalidStateError("Selected user is not a tutor.")
			}
			tutorID = tutor.ID()
		}

		slot := request.Slot()
		available, err := h.oracle.IsTutorAvailable(txCtx, tutorID, slot.StartsAt(), slot.EndsAt())
		if err != nil {
			return err
		}
		if !available {
			return sharedDomain.InvalidStateError("The selected tutor is not available at the requested time.")
		}

		contract, err := h.contractRepo.GetByIDForUpdate(txCtx, request.ContractID())
		if err != nil {
			return err
		}

		newSession := sessionsDomain.NewSession(contract.ID(), session.ParentID(), tutorID,
			slot.StartsAt(), slot.EndsAt(), session.Mode())

		if err := session.MarkRescheduled(newSession.ID()); err != nil {
			return err
		}

		contract.ConsumeReschedule()

		if err := request.Approve(cmd.StaffID); err != nil {
			return err
		}

		if err := h.sessionRepo.Add(txCtx, newSession); err != nil {
			return err
		}
		if err := h.sessionRepo.Update(txCtx, session); err != nil {
			return err
		}
		if err := h.contractRepo.Update(txCtx, contract); err != nil {
			return err
		}
		if err := h.requestRepo.Update(txCtx, request); err != nil {
			return err
		}

		events := make([]sharedDomain.DomainEvent, 0)
		events = append(events, newSession.DomainEvents()...)
		events = append(events, session.DomainEvents()...)
		events = append(events, contract.DomainEvents()...)
		events = append(events, request.DomainEvents()...)
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.StaffID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}

func approvalLockKey(contractID uuid.UUID) string {
	return fmt.Sprintf("reschedule:contract:%s", contractID)
}
