package engine

import "errors"

var (
	// ErrInvalidK is returned when the search target is zero.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInconsistentTotal is returned when the shared total disagrees with
	// the sum of the per-worker partial counts.
	ErrInconsistentTotal = errors.New("shared total does not match partial counts")
)
