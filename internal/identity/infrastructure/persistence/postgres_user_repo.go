package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlane/tutorlane/internal/identity/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
)

// PostgresUserRepository handles persistence for users using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// GetByID retrieves a user by their ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	execer := sharedPersistence.Executor(ctx, r.pool)

	var (
		userID               uuid.UUID
		name, email, role    string
		createdAt, updatedAt time.Time
	)

	err := execer.QueryRow(ctx, query, id).Scan(&userID, &name, &email, &role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharedDomain.NotFoundError("User not found.")
		}
		return nil, err
	}

	return toDomain(userID, name, email, role, createdAt, updatedAt)
}

// Add stores a new user.
func (r *PostgresUserRepository) Add(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		user.ID(),
		user.Name(),
		user.Email(),
		user.Role().String(),
		user.CreatedAt(),
		user.UpdatedAt(),
	)
	return err
}

// toDomain converts database values to a domain User.
func toDomain(id uuid.UUID, name, email, roleStr string, createdAt, updatedAt time.Time) (*domain.User, error) {
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return domain.RehydrateUser(entity, name, email, role), nil
}
