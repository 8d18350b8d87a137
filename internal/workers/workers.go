// Package workers runs short-lived, joined groups of worker goroutines.
//
// A group is created per computation and fully joined before Run returns;
// callers never see goroutine handles. The first failing worker cancels the
// shared context and its error is the only one reported.
package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidCount is returned when a group is requested with fewer than one worker.
var ErrInvalidCount = errors.New("worker count must be at least 1")

// Func is the body of one worker. worker is the zero-based worker index.
type Func[T any] func(ctx context.Context, worker int) (T, error)

// FaultError reports the worker that terminated abnormally.
//
// The original error (or *PanicError) can be accessed via errors.Unwrap.
type FaultError struct {
	Worker int
	cause  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Worker, e.cause)
}

func (e *FaultError) Unwrap() error { return e.cause }

// PanicError carries a value recovered from a panicking worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run starts count workers, waits for all of them and returns their results
// indexed by worker.
//
// Any worker error or panic aborts the group: the remaining workers observe
// ctx cancellation, partial results are discarded and a *FaultError is returned.
func Run[T any](ctx context.Context, count int, fn Func[T]) ([]T, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	results := make([]T, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(count)

	for i := range count {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &FaultError{Worker: i, cause: &PanicError{Value: r, Stack: debug.Stack()}}
				}
			}()

			res, err := fn(gctx, i)
			if err != nil {
				return &FaultError{Worker: i, cause: err}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
