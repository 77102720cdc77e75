package singleton

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry access.
var (
	// ErrNilContext indicates GetOrCreate was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrNilFactory indicates GetOrCreate was called with a nil factory.
	ErrNilFactory = errors.New("factory cannot be nil")

	// ErrInvalidKey indicates GetOrCreate was called with the zero Key.
	ErrInvalidKey = errors.New("key does not identify a type")

	// ErrWrongType indicates the cached instance for a key does not have the
	// type the caller asked for. This only happens when untyped keys are mixed
	// with typed accessors by hand.
	ErrWrongType = errors.New("cached instance has unexpected type")
)

// ConstructionError wraps a factory failure during first construction.
//
// It surfaces only to the caller whose attempt ran the factory; the entry is
// left empty, so a later call may retry construction.
type ConstructionError struct {
	// Key identifies the type whose construction failed.
	Key Key

	// Attempt is the 1-based construction attempt number for the key.
	Attempt int64

	// Err is the error returned by the factory.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %s (attempt %d): %v", e.Key, e.Attempt, e.Err)
}

// Unwrap returns the underlying factory error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}
