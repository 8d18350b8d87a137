package engine

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/internal/resource"
	"github.com/hupe1980/primecount/internal/shared"
	"github.com/hupe1980/primecount/sieve"
)

// Observer receives every accepted increment of the early-stop search:
// the prime that was counted and the count after the increment. Calls are
// serialized and arrive in ascending prime order.
type Observer func(prime, count uint64)

// Config carries the collaborators shared by all coordinators.
// The zero value is usable.
type Config struct {
	Logger *slog.Logger

	// Policy backs the shared counter and the shared sieve.
	Policy shared.Policy

	// Generator produces base primes and runs the sequential strategy.
	// Defaults to sieve.Eratosthenes.
	Generator sieve.Generator

	// Resources bounds buffer memory and throttles progress logs. May be nil.
	Resources *resource.Controller

	// SegmentWidth overrides the segment width. 0 means ⌊√N⌋.
	SegmentWidth uint64

	// Observer is called for every accepted increment of FindFirstK. May be nil.
	Observer Observer
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) generator() sieve.Generator {
	if c.Generator == nil {
		return sieve.Eratosthenes{}
	}
	return c.Generator
}

// progress logs a throttled debug event.
func (c *Config) progress(msg string, args ...any) {
	if c.Resources.AllowProgress() {
		c.logger().Debug(msg, args...)
	}
}

// exclusiveLimit returns n+1, the end of the half-open range [0, n].
func exclusiveLimit(n uint64) (uint64, error) {
	return conv.AddUint64(n, 1)
}

// reserve charges bytes against the memory budget and returns the release func.
func (c *Config) reserve(bytes int64) (func(), error) {
	if err := c.Resources.AcquireMemory(bytes); err != nil {
		return nil, err
	}
	return func() { c.Resources.ReleaseMemory(bytes) }, nil
}

// generate runs the generator up to limit with its flag array charged
// against the memory budget for the duration of the call.
func (c *Config) generate(limit uint64) ([]uint64, error) {
	gen := c.generator()

	// One flag per integer in [0, limit].
	release, err := c.reserve(int64(min(limit, 1<<62) + 1))
	if err != nil {
		return nil, err
	}
	defer release()

	primes, err := gen.Generate(limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gen.Name(), err)
	}
	return primes, nil
}
