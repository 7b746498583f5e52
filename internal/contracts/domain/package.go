package domain

import "time"

// Package describes the tuition bundle a contract was sold under.
type Package struct {
	Name          string
	SessionCount  int
	MaxReschedule int
	SlotDuration  time.Duration
}

// DefaultSlotDuration is the length of every tuition slot.
const DefaultSlotDuration = 90 * time.Minute
