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

// cancelCheckInterval is how many candidates a worker handles between
// context checks in the tight loops.
const cancelCheckInterval = 1024

// CountSharedSieve returns π(n) with one sieve array shared by all workers.
//
// In the striking phase every worker walks the candidates p with p² ≤ n,
// worker i starting at the i-th prime. A worker that finds p unstruck and
// wins the claim on p strikes its multiples from p². Concurrent strikes of
// the same position are idempotent. In the counting phase the survivors in
// [2, n] are counted over contiguous blocks and merged.
func CountSharedSieve(ctx context.Context, cfg Config, n uint64, count int) (uint64, error) {
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

	release, err := cfg.reserve(2 * segment.BufferBytes(limit))
	if err != nil {
		return 0, err
	}
	defer release()

	s, err := shared.NewSieve(cfg.Policy, limit)
	if err != nil {
		return 0, err
	}

	root := sieve.Isqrt(n)
	starts := firstPrimes(count)

	log := cfg.logger()
	log.Debug("Shared sieve started", "n", n, "workers", count, "policy", cfg.Policy.String())
	start := time.Now()

	claims := NewPartials(count)

	_, err = workers.Run(ctx, count, func(ctx context.Context, worker int) (struct{}, error) {
		for p, i := starts[worker], 0; p <= root; p, i = p+1, i+1 {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return struct{}{}, err
				}
			}
			if s.Composite(p) || !s.Claim(p) {
				continue
			}
			// p ≤ ⌊√n⌋, so p² cannot overflow.
			s.StrikeMultiples(p*p, p)
			claims.Add(worker, 1)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return 0, abortErr(ctx, err)
	}

	blocks := splitRange(2, limit, count)
	survivors := NewPartials(count)

	_, err = workers.Run(ctx, count, func(ctx context.Context, worker int) (struct{}, error) {
		if err := ctx.Err(); err != nil {
			return struct{}{}, err
		}
		b := blocks[worker]
		survivors.Add(worker, b.Width()-s.CountComposite(b.Lo, b.Hi))
		return struct{}{}, nil
	})
	if err != nil {
		return 0, abortErr(ctx, err)
	}

	result, err := survivors.Sum()
	if err != nil {
		return 0, err
	}

	log.Debug("Shared sieve done",
		"n", n,
		"count", result,
		"claims", claims.Values(),
		"duration", time.Since(start),
	)

	return result, nil
}

// firstPrimes returns the first n primes.
func firstPrimes(n int) []uint64 {
	out := make([]uint64, 0, n)
	for c := uint64(2); len(out) < n; c++ {
		if sieve.IsPrime(c) {
			out = append(out, c)
		}
	}
	return out
}

// splitRange cuts [lo, hi) into n contiguous blocks whose widths differ by
// at most one. Blocks may be empty when the range is shorter than n.
func splitRange(lo, hi uint64, n int) []segment.Segment {
	blocks := make([]segment.Segment, n)
	if hi < lo {
		hi = lo
	}
	span := hi - lo
	step, rem := span/uint64(n), span%uint64(n)

	cur := lo
	for i := range blocks {
		w := step
		if uint64(i) < rem {
			w++
		}
		blocks[i] = segment.Segment{Lo: cur, Hi: cur + w}
		cur += w
	}
	return blocks
}

// abortErr prefers the caller's cancellation over the worker fault it caused.
func abortErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("aborted: %w", err)
}
