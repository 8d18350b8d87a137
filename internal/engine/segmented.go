package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/primecount/internal/segment"
	"github.com/hupe1980/primecount/internal/shared"
	"github.com/hupe1980/primecount/internal/workers"
	"github.com/hupe1980/primecount/sieve"
)

// CountSegmented returns π(n) with the segmented parallel sieve.
//
// The base range [0, w) is counted from the base primes; [w, n] is cut into
// segments of width w that are dealt round-robin to the workers. Each worker
// sieves its share with a private buffer and a private sum, and adds that sum
// to the shared total exactly once when it is done.
func CountSegmented(ctx context.Context, cfg Config, n uint64, count int) (uint64, error) {
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

	root := sieve.Isqrt(n)
	width := cfg.SegmentWidth
	if width == 0 {
		width = max(root, 1)
	}
	base := min(width, limit)

	primes, err := cfg.generate(max(root, base-1))
	if err != nil {
		return 0, fmt.Errorf("base primes: %w", err)
	}

	// The base range holds the primes below w. A prime equal to w belongs to
	// the first segment.
	var seed uint64
	for _, p := range primes {
		if p >= base {
			break
		}
		seed++
	}

	total, err := shared.NewCounter(cfg.Policy, seed)
	if err != nil {
		return 0, err
	}

	plan, err := segment.NewPlan(limit, width)
	if err != nil {
		return 0, err
	}

	log := cfg.logger()
	log.Debug("Segmented count started",
		"n", n,
		"width", width,
		"segments", plan.Len(),
		"base_primes", len(primes),
		"workers", count,
		"policy", cfg.Policy.String(),
	)
	start := time.Now()

	_, err = workers.Run(ctx, count, func(ctx context.Context, worker int) (struct{}, error) {
		release, err := cfg.reserve(segment.BufferBytes(width))
		if err != nil {
			return struct{}{}, err
		}
		defer release()

		buf, err := segment.NewSieve(width, limit)
		if err != nil {
			return struct{}{}, err
		}
		defer buf.Release()

		var sum uint64
		for seg := range plan.Assign(worker, count) {
			if err := ctx.Err(); err != nil {
				return struct{}{}, err
			}

			c, err := buf.Count(seg, primes)
			if err != nil {
				return struct{}{}, fmt.Errorf("segment [%d, %d): %w", seg.Lo, seg.Hi, err)
			}
			sum += c

			cfg.progress("Segment sieved", "worker", worker, "lo", seg.Lo, "hi", seg.Hi, "partial", sum)
		}

		total.Add(sum)
		return struct{}{}, nil
	})
	if err != nil {
		return 0, abortErr(ctx, err)
	}

	result := total.Load()
	log.Debug("Segmented count done", "n", n, "count", result, "duration", time.Since(start))

	return result, nil
}
