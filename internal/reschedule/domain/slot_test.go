package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

func TestNewSlot(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	t.Run("accepts every fixed slot start", func(t *testing.T) {
		cases := map[string]string{
			"16:00": "17:30",
			"17:30": "19:00",
			"19:00": "20:30",
			"20:30": "22:00",
		}
		for start, end := range cases {
			slot, err := NewSlot(date, start, end)
			require.NoError(t, err)
			assert.Equal(t, SlotDuration, slot.EndsAt().Sub(slot.StartsAt()))
		}
	})

	t.Run("anchors the window on the requested date", func(t *testing.T) {
		slot, err := NewSlot(date, "16:00", "17:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 10, 16, 0, 0, 0, time.UTC), slot.StartsAt())
		assert.Equal(t, time.Date(2026, 9, 10, 17, 30, 0, 0, time.UTC), slot.EndsAt())
	})

	t.Run("rejects a start outside the fixed set", func(t *testing.T) {
		_, err := NewSlot(date, "15:00", "16:30")
		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidArgument, sharedDomain.KindOf(err))
		assert.Equal(t, "Start time must be 16:00, 17:30, 19:00, or 20:30.", err.Error())
	})

	t.Run("rejects an unparseable start", func(t *testing.T) {
		_, err := NewSlot(date, "four pm", "17:30")
		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidArgument, sharedDomain.KindOf(err))
	})

	t.Run("rejects an end that is not start plus 90 minutes", func(t *testing.T) {
		_, err := NewSlot(date, "16:00", "18:00")
		require.Error(t, err)
		assert.Equal(t, sharedDomain.KindInvalidArgument, sharedDomain.KindOf(err))
		assert.Equal(t, "End time must be 17:30.", err.Error())
	})
}
