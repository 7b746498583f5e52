package infrastructure

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	sharedPersistence "github.com/tutorlane/tutorlane/internal/shared/infrastructure/persistence"
)

// BookingOracle answers availability from existing session bookings: a tutor
// is free when no open session of theirs overlaps the window.
type BookingOracle struct {
	pool *pgxpool.Pool
}

// NewBookingOracle creates an oracle backed by the sessions table.
func NewBookingOracle(pool *pgxpool.Pool) *BookingOracle {
	return &BookingOracle{pool: pool}
}

// IsTutorAvailable reports whether the tutor has no overlapping open session.
func (o *BookingOracle) IsTutorAvailable(ctx context.Context, tutorID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE tutor_id = $1
		  AND status NOT IN ('cancelled', 'rescheduled')
		  AND starts_at < $3
		  AND ends_at > $2
	`

	execer := sharedPersistence.Executor(ctx, o.pool)

	var count int64
	if err := execer.QueryRow(ctx, query, tutorID, start, end).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
