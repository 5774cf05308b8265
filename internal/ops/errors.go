package ops

import (
	"errors"
	"fmt"
)

// Domain errors for sorting runs.
var (
	// ErrInvalidInput indicates an input array that cannot be visualized:
	// empty, or holding a NaN or infinite value.
	ErrInvalidInput = errors.New("sortsim: invalid input")

	// ErrOutOfBounds indicates an operation that references an index outside the snapshot.
	ErrOutOfBounds = errors.New("sortsim: operation index out of bounds")

	// ErrInvalidInterval indicates a non-positive playback interval.
	ErrInvalidInterval = errors.New("sortsim: playback interval must be positive")

	// ErrUnknownAlgorithm indicates an algorithm identifier missing from the registry.
	ErrUnknownAlgorithm = errors.New("sortsim: unknown algorithm")
)

// OutOfBoundsError wraps ErrOutOfBounds with the offending operation.
type OutOfBoundsError struct {
	Op  Operation
	Len int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v: %s on snapshot of length %d", ErrOutOfBounds, e.Op, e.Len)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
