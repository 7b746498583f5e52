// Package domain holds the availability port. The engine never interprets
// why a tutor is unavailable; the oracle's answer is authoritative.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Oracle answers whether a tutor is free in a given time window.
type Oracle interface {
	IsTutorAvailable(ctx context.Context, tutorID uuid.UUID, start, end time.Time) (bool, error)
}
