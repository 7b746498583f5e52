package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlane/tutorlane/internal/contracts/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
)

const selectContractSQL = `
	SELECT id, parent_id, main_tutor_id, sub_tutor1_id, sub_tutor2_id,
	       package_name, session_count, max_reschedule, slot_duration_minutes,
	       reschedule_count, end_date, status, created_at, updated_at
	FROM contracts
	WHERE id = $1
`

// PostgresContractRepository handles persistence for contracts using PostgreSQL.
type PostgresContractRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresContractRepository creates a new PostgresContractRepository.
func NewPostgresContractRepository(pool *pgxpool.Pool) *PostgresContractRepository {
	return &PostgresContractRepository{pool: pool}
}

// GetByID retrieves a contract by its ID.
func (r *PostgresContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return r.get(ctx, selectContractSQL, id)
}

// GetByIDForUpdate retrieves a contract and takes a row lock on it. Must run
// inside a unit of work; the lock serializes concurrent reschedule flows on
// the same contract.
func (r *PostgresContractRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return r.get(ctx, selectContractSQL+" FOR UPDATE", id)
}

func (r *PostgresContractRepository) get(ctx context.Context, query string, id uuid.UUID) (*domain.Contract, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	var (
		contractID, parentID, mainTutorID    uuid.UUID
		subTutor1ID, subTutor2ID             *uuid.UUID
		packageName, status                  string
		sessionCount, maxReschedule          int
		slotDurationMinutes, rescheduleCount int
		endDate, createdAt, updatedAt        time.Time
	)

	err := execer.QueryRow(ctx, query, id).Scan(
		&contractID, &parentID, &mainTutorID, &subTutor1ID, &subTutor2ID,
		&packageName, &sessionCount, &maxReschedule, &slotDurationMinutes,
		&rescheduleCount, &endDate, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharedDomain.NotFoundError("Contract not found.")
		}
		return nil, err
	}

	pkg := domain.Package{
		Name:          packageName,
		SessionCount:  sessionCount,
		MaxReschedule: maxReschedule,
		SlotDuration:  time.Duration(slotDurationMinutes) * time.Minute,
	}

	entity := sharedDomain.RehydrateBaseEntity(contractID, createdAt, updatedAt)
	return domain.RehydrateContract(entity, parentID, mainTutorID, subTutor1ID, subTutor2ID,
		pkg, rescheduleCount, endDate, status), nil
}

// Add stores a new contract.
func (r *PostgresContractRepository) Add(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (
			id, parent_id, main_tutor_id, sub_tutor1_id, sub_tutor2_id,
			package_name, session_count, max_reschedule, slot_duration_minutes,
			reschedule_count, end_date, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	pkg := contract.Package()
	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		contract.ID(),
		contract.ParentID(),
		contract.MainTutorID(),
		contract.SubTutor1ID(),
		contract.SubTutor2ID(),
		pkg.Name,
		pkg.SessionCount,
		pkg.MaxReschedule,
		int(pkg.SlotDuration.Minutes()),
		contract.RescheduleCount(),
		contract.EndDate(),
		contract.Status(),
		contract.CreatedAt(),
		contract.UpdatedAt(),
	)
	return err
}

// Update persists changes to an existing contract.
func (r *PostgresContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET sub_tutor1_id = $2, sub_tutor2_id = $3, reschedule_count = $4,
		    status = $5, updated_at = $6
		WHERE id = $1
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	tag, err := execer.Exec(ctx, query,
		contract.ID(),
		contract.SubTutor1ID(),
		contract.SubTutor2ID(),
		contract.RescheduleCount(),
		contract.Status(),
		contract.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sharedDomain.NotFoundError("Contract not found.")
	}
	return nil
}
