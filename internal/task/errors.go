package task

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidState is returned when a timer operation conflicts with
	// the timer's current state, e.g. starting an already-running timer.
	ErrInvalidState = errors.New("invalid timer state")
)

// ValidationError reports bad user input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
