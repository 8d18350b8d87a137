package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/primecount/internal/shared"
	"github.com/hupe1980/primecount/internal/workers"
	"github.com/hupe1980/primecount/sieve"
)

// CountTrialDivision returns π(n) by testing every candidate with trial
// division. [0, n] is split into one contiguous block per worker and every
// prime found is added to the shared total on the spot, so the total sees
// one critical section per prime.
func CountTrialDivision(ctx context.Context, cfg Config, n uint64, count int) (uint64, error) {
	if count < 1 {
		return 0, workers.ErrInvalidCount
	}
	if n < 2 {
		return 0, nil
	}

	limit, err := exclusiveLimit(n)
	if err != nil {
		return 0, err
	}

	total, err := shared.NewCounter(cfg.Policy, 0)
	if err != nil {
		return 0, err
	}

	blocks := splitRange(0, limit, count)
	found := NewPartials(count)

	log := cfg.logger()
	log.Debug("Trial division started", "n", n, "workers", count, "policy", cfg.Policy.String())
	start := time.Now()

	_, err = workers.Run(ctx, count, func(ctx context.Context, worker int) (struct{}, error) {
		b := blocks[worker]
		for c := b.Lo; c < b.Hi; c++ {
			if (c-b.Lo)%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return struct{}{}, err
				}
				cfg.progress("Trial division progress", "worker", worker, "candidate", c, "found", total.Load())
			}
			if sieve.IsPrime(c) {
				total.Add(1)
				found.Add(worker, 1)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return 0, abortErr(ctx, err)
	}

	sum, err := found.Sum()
	if err != nil {
		return 0, err
	}
	result := total.Load()
	if sum != result {
		return 0, fmt.Errorf("%w: total %d, partials %d", ErrInconsistentTotal, result, sum)
	}

	log.Debug("Trial division done", "n", n, "count", result, "duration", time.Since(start))

	return result, nil
}
