package engine

import (
	"context"
)

// CountSequential returns π(n) using the configured generator on one goroutine.
func CountSequential(ctx context.Context, cfg Config, n uint64) (uint64, error) {
	if n < 2 {
		return 0, nil
	}
	if _, err := exclusiveLimit(n); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	primes, err := cfg.generate(n)
	if err != nil {
		return 0, err
	}

	cfg.logger().Debug("Sequential count done", "generator", cfg.generator().Name(), "n", n, "count", len(primes))

	return uint64(len(primes)), nil
}
