package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlane/tutorlane/internal/reschedule/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
)

const selectRequestSQL = `
	SELECT id, contract_id, session_id, requested_by, new_starts_at, new_tutor_id,
	       status, reason, resolved_by, resolved_at, created_at, updated_at
	FROM reschedule_requests
`

// PostgresRequestRepository handles persistence for reschedule requests
// using PostgreSQL.
type PostgresRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRequestRepository creates a new PostgresRequestRepository.
func NewPostgresRequestRepository(pool *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{pool: pool}
}

// GetByID retrieves a request by its ID.
func (r *PostgresRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RescheduleRequest, error) {
	return r.get(ctx, selectRequestSQL+" WHERE id = $1", id)
}

// GetByIDForUpdate retrieves a request and takes a row lock on it. Must run
// inside a unit of work; the lock serializes approval and rejection of the
// same request.
func (r *PostgresRequestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.RescheduleRequest, error) {
	return r.get(ctx, selectRequestSQL+" WHERE id = $1 FOR UPDATE", id)
}

func (r *PostgresRequestRepository) get(ctx context.Context, query string, id uuid.UUID) (*domain.RescheduleRequest, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	request, err := scanRequest(execer.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharedDomain.NotFoundError("Reschedule request not found.")
		}
		return nil, err
	}
	return request, nil
}

// HasPendingForContract reports whether the contract already has a pending
// request.
func (r *PostgresRequestRepository) HasPendingForContract(ctx context.Context, contractID uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM reschedule_requests
		WHERE contract_id = $1 AND status = 'pending'
	`

	execer := sharedPersistence.Executor(ctx, r.pool)

	var count int64
	if err := execer.QueryRow(ctx, query, contractID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByContract retrieves all requests of a contract, newest first.
func (r *PostgresRequestRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.RescheduleRequest, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	rows, err := execer.Query(ctx, selectRequestSQL+" WHERE contract_id = $1 ORDER BY created_at DESC", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.RescheduleRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// Add stores a new request.
func (r *PostgresRequestRepository) Add(ctx context.Context, request *domain.RescheduleRequest) error {
	query := `
		INSERT INTO reschedule_requests (
			id, contract_id, session_id, requested_by, new_starts_at, new_tutor_id,
			status, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		request.ID(),
		request.ContractID(),
		request.SessionID(),
		request.RequestedBy(),
		request.Slot().StartsAt(),
		request.NewTutorID(),
		request.Status().String(),
		request.Reason(),
		request.CreatedAt(),
		request.UpdatedAt(),
	)
	return err
}

// Update persists changes to an existing request.
func (r *PostgresRequestRepository) Update(ctx context.Context, request *domain.RescheduleRequest) error {
	query := `
		UPDATE reschedule_requests
		SET status = $2, reason = $3, resolved_by = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	tag, err := execer.Exec(ctx, query,
		request.ID(),
		request.Status().String(),
		request.Reason(),
		request.ResolvedBy(),
		request.ResolvedAt(),
		request.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sharedDomain.NotFoundError("Reschedule request not found.")
	}
	return nil
}

func scanRequest(row pgx.Row) (*domain.RescheduleRequest, error) {
	var (
		id, contractID, sessionID, requestedBy uuid.UUID
		newStartsAt                            time.Time
		newTutorID, resolvedBy                 *uuid.UUID
		statusStr                              string
		reason                                 *string
		resolvedAt                             *time.Time
		createdAt, updatedAt                   time.Time
	)

	err := row.Scan(&id, &contractID, &sessionID, &requestedBy, &newStartsAt, &newTutorID,
		&statusStr, &reason, &resolvedBy, &resolvedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	reasonStr := ""
	if reason != nil {
		reasonStr = *reason
	}

	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return domain.RehydrateRescheduleRequest(entity, contractID, sessionID, requestedBy,
		domain.RehydrateSlot(newStartsAt), newTutorID,
		domain.RequestStatus(statusStr), reasonStr, resolvedBy, resolvedAt), nil
}
