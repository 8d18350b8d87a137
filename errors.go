package primecount

import (
	"errors"
	"fmt"

	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/internal/engine"
	"github.com/hupe1980/primecount/internal/resource"
	"github.com/hupe1980/primecount/internal/workers"
)

var (
	// ErrInvalidWorkerCount is returned when fewer than one worker is requested.
	// The count is never coerced.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrInvalidK is returned when the search target is zero.
	ErrInvalidK = errors.New("k must be positive")

	// ErrUnknownStrategy is returned for an unsupported Strategy.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrOverflow is returned when a bound or an intermediate value does not
	// fit in 64 bits, e.g. n = math.MaxUint64.
	ErrOverflow = errors.New("integer overflow")

	// ErrMemoryLimit is returned when the memory limit cannot cover the
	// buffers of a run.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// WorkerFaultError reports a worker that failed or panicked. The whole
// computation is aborted and no partial result is returned.
//
// The original error can be accessed via errors.Unwrap.
type WorkerFaultError struct {
	Worker int
	cause  error
}

func (e *WorkerFaultError) Error() string {
	return fmt.Sprintf("worker %d fault: %v", e.Worker, e.cause)
}

func (e *WorkerFaultError) Unwrap() error { return e.cause }

// Panicked reports whether the worker panicked rather than returned an error.
func (e *WorkerFaultError) Panicked() bool {
	var pe *workers.PanicError
	return errors.As(e.cause, &pe)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	out := err
	switch {
	case errors.Is(err, workers.ErrInvalidCount):
		out = fmt.Errorf("%w: %w", ErrInvalidWorkerCount, err)
	case errors.Is(err, engine.ErrInvalidK):
		out = fmt.Errorf("%w: %w", ErrInvalidK, err)
	case errors.Is(err, conv.ErrOverflow):
		out = fmt.Errorf("%w: %w", ErrOverflow, err)
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		out = fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}

	var fe *workers.FaultError
	if errors.As(err, &fe) {
		return &WorkerFaultError{Worker: fe.Worker, cause: out}
	}
	return out
}
