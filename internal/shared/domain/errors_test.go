package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Run("kind of classified error", func(t *testing.T) {
		err := NotFoundError("Session not found.")
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, "Session not found.", err.Error())
	})

	t.Run("kind of wrapped error", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", InvalidStateError("Cannot reschedule past sessions."))
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("kind of unclassified error is empty", func(t *testing.T) {
		assert.Equal(t, ErrorKind(""), KindOf(errors.New("connection refused")))
	})

	t.Run("sentinels compare with errors.Is", func(t *testing.T) {
		sentinel := UnauthorizedError("You can only reschedule your child's sessions.")
		got := fmt.Errorf("create request: %w", UnauthorizedError("You can only reschedule your child's sessions."))
		assert.ErrorIs(t, got, sentinel)
	})

	t.Run("different messages are not equal", func(t *testing.T) {
		assert.NotErrorIs(t, InvalidStateError("a"), InvalidStateError("b"))
	})
}
