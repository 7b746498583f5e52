package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
)

const selectSessionSQL = `
	SELECT id, contract_id, parent_id, tutor_id, starts_at, ends_at, mode, status,
	       created_at, updated_at
	FROM sessions
`

// PostgresSessionRepository handles persistence for sessions using PostgreSQL.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository.
func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// GetByID retrieves a session by its ID.
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	row := execer.QueryRow(ctx, selectSessionSQL+" WHERE id = $1", id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharedDomain.NotFoundError("Session not found.")
		}
		return nil, err
	}
	return session, nil
}

// ListByContract retrieves all sessions of a contract ordered by start time.
func (r *PostgresSessionRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.Session, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	rows, err := execer.Query(ctx, selectSessionSQL+" WHERE contract_id = $1 ORDER BY starts_at", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Add stores a new session.
func (r *PostgresSessionRepository) Add(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, contract_id, parent_id, tutor_id, starts_at, ends_at, mode, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		session.ID(),
		session.ContractID(),
		session.ParentID(),
		session.TutorID(),
		session.StartsAt(),
		session.EndsAt(),
		session.Mode().String(),
		session.Status().String(),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	return err
}

// Update persists changes to an existing session.
func (r *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET tutor_id = $2, starts_at = $3, ends_at = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	tag, err := execer.Exec(ctx, query,
		session.ID(),
		session.TutorID(),
		session.StartsAt(),
		session.EndsAt(),
		session.Status().String(),
		session.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sharedDomain.NotFoundError("Session not found.")
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		id, contractID, parentID, tutorID uuid.UUID
		startsAt, endsAt                  time.Time
		modeStr, statusStr                string
		createdAt, updatedAt              time.Time
	)

	err := row.Scan(&id, &contractID, &parentID, &tutorID, &startsAt, &endsAt, &modeStr, &statusStr, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}

	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return domain.RehydrateSession(entity, contractID, parentID, tutorID, startsAt, endsAt, mode, status), nil
}
