package domain

import (
	"time"

	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// SlotDuration is the contract-wide length of every tuition slot.
const SlotDuration = 90 * time.Minute

// allowedSlotStarts are the only times of day a session may begin.
var allowedSlotStarts = []string{"16:00", "17:30", "19:00", "20:30"}

// Slot is a validated session time window on a specific calendar date.
type Slot struct {
	startsAt time.Time
	endsAt   time.Time
}

// NewSlot validates a requested date plus start/end times of day ("HH:MM").
// The start must be one of the fixed slot starts and the end must be exactly
// 90 minutes later.
func NewSlot(date time.Time, startTime, endTime string) (Slot, error) {
	start, err := parseTimeOfDay(startTime)
	if err != nil || !isAllowedStart(startTime) {
		return Slot{}, sharedDomain.InvalidArgumentError("Start time must be 16:00, 17:30, 19:00, or 20:30.")
	}

	requiredEnd := start.Add(SlotDuration)
	end, err := parseTimeOfDay(endTime)
	if err != nil || !end.Equal(requiredEnd) {
		return Slot{}, sharedDomain.InvalidArgumentErrorf("End time must be %s.", requiredEnd.Format("15:04"))
	}

	y, m, d := date.UTC().Date()
	startsAt := time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, time.UTC)

	return Slot{
		startsAt: startsAt,
		endsAt:   startsAt.Add(SlotDuration),
	}, nil
}

// RehydrateSlot recreates a slot from persisted instants.
func RehydrateSlot(startsAt time.Time) Slot {
	return Slot{startsAt: startsAt, endsAt: startsAt.Add(SlotDuration)}
}

func (s Slot) StartsAt() time.Time { return s.startsAt }
func (s Slot) EndsAt() time.Time   { return s.endsAt }

func isAllowedStart(startTime string) bool {
	for _, allowed := range allowedSlotStarts {
		if startTime == allowed {
			return true
		}
	}
	return false
}

func parseTimeOfDay(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
