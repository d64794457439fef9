package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError rejects a command whose input fails a policy check
// (short solution note, resolving an item that is already resolved).
// The command is a no-op; the caller re-prompts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PermissionError rejects a command from an actor without the required
// area relationship. Never downgraded to a partial action.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }

func NewPermissionError(format string, args ...any) error {
	return &PermissionError{Reason: fmt.Sprintf(format, args...)}
}

// StateError rejects a transition that is invalid for the item's current
// state (undoing a pending item, reassigning a resolved one).
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

func NewStateError(format string, args ...any) error {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
