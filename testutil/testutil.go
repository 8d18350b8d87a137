package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64n returns a pseudo-random number in [0,n). n must be positive.
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= math.MaxInt64 {
		return uint64(r.rand.Int63n(int64(n)))
	}
	return r.rand.Uint64() % n
}

// Bounds returns count distinct bounds in [0, maxBound], sorted. The edge
// cases 0, 1, 2, 3 and maxBound are always included.
func (r *RNG) Bounds(count int, maxBound uint64) []uint64 {
	seen := map[uint64]struct{}{maxBound: {}}
	for _, n := range []uint64{0, 1, 2, 3} {
		if n <= maxBound {
			seen[n] = struct{}{}
		}
	}

	span := maxBound + 1
	for tries := 0; len(seen) < count && tries < 4*count; tries++ {
		if span == 0 {
			// maxBound is MaxUint64.
			seen[r.Uint64n(maxBound)] = struct{}{}
			continue
		}
		seen[r.Uint64n(span)] = struct{}{}
	}

	out := make([]uint64, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// PrimePi returns the number of primes p ≤ n by trial division. It is the
// slow ground truth for small n.
func PrimePi(n uint64) uint64 {
	var count uint64
	for c := uint64(2); c <= n; c++ {
		if isPrime(c) {
			count++
		}
		if c == n {
			break
		}
	}
	return count
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
