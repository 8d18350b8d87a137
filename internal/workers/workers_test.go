package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	res, err := Run(t.Context(), 4, func(_ context.Context, worker int) (int, error) {
		return worker * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30}, res)
}

func TestRun_InvalidCount(t *testing.T) {
	var called atomic.Bool
	_, err := Run(t.Context(), 0, func(context.Context, int) (int, error) {
		called.Store(true)
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrInvalidCount)
	assert.False(t, called.Load())
}

func TestRun_AllWorkersConcurrent(t *testing.T) {
	const count = 8

	// Every worker waits until all have started; deadlocks if Run serializes.
	var started atomic.Int32
	ready := make(chan struct{})

	_, err := Run(t.Context(), count, func(ctx context.Context, _ int) (struct{}, error) {
		if started.Add(1) == count {
			close(ready)
		}
		select {
		case <-ready:
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestRun_ErrorAbortsGroup(t *testing.T) {
	boom := errors.New("boom")

	res, err := Run(t.Context(), 4, func(ctx context.Context, worker int) (int, error) {
		if worker == 2 {
			return 0, boom
		}
		<-ctx.Done()
		return 0, ctx.Err()
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)

	var fe *FaultError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Worker)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	res, err := Run(t.Context(), 3, func(_ context.Context, worker int) (int, error) {
		if worker == 1 {
			panic("worker exploded")
		}
		return worker, nil
	})
	require.Error(t, err)
	assert.Nil(t, res)

	var fe *FaultError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Worker)

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "worker exploded", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestRun_ParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := Run(ctx, 2, func(ctx context.Context, _ int) (int, error) {
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
