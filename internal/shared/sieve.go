package shared

import (
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	bbset "github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/primecount/internal/bitset"
	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/sieve"
)

// Sieve is a composite-flag array over [0, Len()) shared by all workers.
type Sieve interface {
	// StrikeMultiples marks start, start+step, start+2·step, ... below Len()
	// as composite. Striking is idempotent.
	StrikeMultiples(start, step uint64)

	// Composite reports whether i has been struck.
	Composite(i uint64) bool

	// Claim marks p as being sieved and reports whether the caller is the
	// first to claim it.
	Claim(p uint64) bool

	// CountComposite returns the number of struck positions in [lo, hi).
	CountComposite(lo, hi uint64) uint64

	// Len returns the size of the array.
	Len() uint64
}

// NewSieve returns a Sieve of the given size under policy p.
func NewSieve(p Policy, size uint64) (Sieve, error) {
	if _, err := conv.Uint64ToInt(size); err != nil {
		return nil, fmt.Errorf("shared sieve: %w", err)
	}

	switch p {
	case LockFree:
		return &atomicSieve{
			composite: bitset.New(size),
			// Only primes with p² < size are ever claimed.
			claimed: bitset.New(sieve.Isqrt(size) + 1),
		}, nil
	case Exclusive, ReaderWriter:
		return &lockedSieve{
			exclusive: p == Exclusive,
			composite: bbset.New(uint(size)),
			claimed:   roaring64.New(),
			size:      size,
		}, nil
	default:
		return nil, ErrUnknownPolicy
	}
}

// atomicSieve strikes and claims with atomic word operations.
type atomicSieve struct {
	composite *bitset.BitSet
	claimed   *bitset.BitSet
}

func (s *atomicSieve) StrikeMultiples(start, step uint64) {
	size := s.composite.Len()
	for i := start; i < size; i += step {
		s.composite.Set(i)
		if size-i <= step {
			return
		}
	}
}

func (s *atomicSieve) Composite(i uint64) bool { return s.composite.Test(i) }

func (s *atomicSieve) Claim(p uint64) bool {
	if p >= s.claimed.Len() {
		return false
	}
	return !s.claimed.TestAndSet(p)
}

func (s *atomicSieve) CountComposite(lo, hi uint64) uint64 {
	return s.composite.CountRange(lo, hi)
}

func (s *atomicSieve) Len() uint64 { return s.composite.Len() }

// lockedSieve guards a plain bitset and a roaring claim set with one lock.
// In exclusive mode reads take the write lock as well.
type lockedSieve struct {
	mu        sync.RWMutex
	exclusive bool

	composite *bbset.BitSet
	claimed   *roaring64.Bitmap
	size      uint64
}

func (s *lockedSieve) rlock() {
	if s.exclusive {
		s.mu.Lock()
		return
	}
	s.mu.RLock()
}

func (s *lockedSieve) runlock() {
	if s.exclusive {
		s.mu.Unlock()
		return
	}
	s.mu.RUnlock()
}

func (s *lockedSieve) StrikeMultiples(start, step uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := start; i < s.size; i += step {
		s.composite.Set(uint(i))
		if s.size-i <= step {
			return
		}
	}
}

func (s *lockedSieve) Composite(i uint64) bool {
	s.rlock()
	defer s.runlock()

	return s.composite.Test(uint(i))
}

func (s *lockedSieve) Claim(p uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claimed.Contains(p) {
		return false
	}
	s.claimed.Add(p)
	return true
}

func (s *lockedSieve) CountComposite(lo, hi uint64) uint64 {
	s.rlock()
	defer s.runlock()

	hi = min(hi, s.size)
	var count uint64
	for i, ok := s.composite.NextSet(uint(lo)); ok && uint64(i) < hi; i, ok = s.composite.NextSet(i + 1) {
		count++
	}
	return count
}

func (s *lockedSieve) Len() uint64 { return s.size }
