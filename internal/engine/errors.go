package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced habit/goal/step/user/item that does not
// exist. Callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrAlreadyCompleted marks an idempotency rejection: a habit already
// completed for the calendar day, or a goal step already completed.
var ErrAlreadyCompleted = errors.New("already completed")

// InsufficientError is returned by the shop when a balance cannot cover a
// purchase.
type InsufficientError struct {
	Resource string // "gold" or "gems"
	Need     int
	Have     int
}

func (e InsufficientError) Error() string {
	return fmt.Sprintf("not enough %s: need %d, have %d", e.Resource, e.Need, e.Have)
}

// LevelGateError is returned when an item requires a higher level.
type LevelGateError struct {
	RequiredLevel int
	CurrentLevel  int
}

func (e LevelGateError) Error() string {
	return fmt.Sprintf("requires level %d (currently %d)", e.RequiredLevel, e.CurrentLevel)
}
