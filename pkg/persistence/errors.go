// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrStateNotFound indicates no editor state is stored under the given key.
	ErrStateNotFound = errors.New("editor state not found")

	// ErrInvalidKey indicates an empty key or one that cannot be stored safely.
	ErrInvalidKey = errors.New("invalid state key")
)

// StateError wraps editor state errors with the operation and key.
type StateError struct {
	Op  string // Operation being performed (e.g., "LoadState", "SaveState")
	Key string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s operation failed for state %s: %v", e.Op, e.Key, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for state errors.
func (e *StateError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStateError creates a new state error with context.
func NewStateError(op, key string, err error) *StateError {
	return &StateError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// IsStateNotFound checks if an error indicates no state was stored.
func IsStateNotFound(err error) bool {
	return errors.Is(err, ErrStateNotFound)
}
