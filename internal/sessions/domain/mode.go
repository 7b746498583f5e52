package domain

import (
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// Mode says whether a session is held online or at a physical location.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// ParseMode validates a raw mode string.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeOnline, ModeOffline:
		return Mode(raw), nil
	default:
		return "", sharedDomain.InvalidArgumentErrorf("Mode must be online or offline. Got: %s.", raw)
	}
}

func (m Mode) String() string { return string(m) }
