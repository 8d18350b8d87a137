package sieve

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/primecount/internal/conv"
)

// ErrUnknownGenerator is returned by Lookup for an unregistered name.
var ErrUnknownGenerator = errors.New("unknown generator")

// Generator produces the ordered set of primes <= limit.
type Generator interface {
	// Name returns the registry name of the generator.
	Name() string

	// Generate returns all primes p <= limit in ascending order.
	// A limit below 2 yields an empty result.
	Generate(limit uint64) ([]uint64, error)
}

var registry = map[string]Generator{
	Eratosthenes{}.Name():  Eratosthenes{},
	Atkin{}.Name():         Atkin{},
	Wheel30{}.Name():       Wheel30{},
	TrialDivision{}.Name(): TrialDivision{},
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return g, nil
}

// Names returns the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// flagsFor allocates a flag array covering [0, limit].
func flagsFor(limit uint64) ([]bool, error) {
	size, err := conv.AddUint64(limit, 1)
	if err != nil {
		return nil, err
	}
	n, err := conv.Uint64ToInt(size)
	if err != nil {
		return nil, err
	}
	return make([]bool, n), nil
}

// estimateCount is an upper bound of π(limit) used to size result slices.
func estimateCount(limit uint64) int {
	if limit < 17 {
		return 7
	}
	x := float64(limit)
	est := 1.25506 * x / math.Log(x)
	if est > 1<<26 {
		return 1 << 26
	}
	return int(est) + 1
}
