package segment

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/internal/pool"
)

// ErrSegmentTooWide is returned when a segment does not fit the sieve buffer.
var ErrSegmentTooWide = errors.New("segment wider than sieve buffer")

// Sieve marks composites within one segment at a time.
//
// A set bit in the buffer means "struck". The buffer is cleared at the start
// of every Count, so each segment starts from an all-candidate state.
// A Sieve is not safe for concurrent use; give each worker its own.
type Sieve struct {
	buf   *bitset.BitSet
	width uint64
	limit uint64
}

// NewSieve allocates a sieve for segments of at most width integers below limit.
func NewSieve(width, limit uint64) (*Sieve, error) {
	if width == 0 {
		return nil, ErrInvalidWidth
	}
	if _, err := conv.Uint64ToInt(width); err != nil {
		return nil, fmt.Errorf("segment buffer: %w", err)
	}
	return &Sieve{
		buf:   pool.Get(uint(width)),
		width: width,
		limit: limit,
	}, nil
}

// Release hands the buffer back for reuse. The Sieve must not be used afterwards.
func (s *Sieve) Release() {
	pool.Put(s.buf)
	s.buf = nil
}

// BufferBytes returns the memory a Sieve of the given width holds.
// The result saturates at math.MaxInt64.
func BufferBytes(width uint64) int64 {
	words := width / 64
	if width%64 != 0 {
		words++
	}
	return int64(min(conv.SaturatingMul(words, 8), math.MaxInt64))
}

// Count returns the number of primes in seg.
//
// primes must contain, in ascending order, every prime p with p² < seg.Hi.
// A segment reaching past the sieve limit is clipped to it.
func (s *Sieve) Count(seg Segment, primes []uint64) (uint64, error) {
	lo := seg.Lo
	hi := min(seg.Hi, s.limit)
	if lo >= hi {
		return 0, nil
	}

	span := hi - lo
	if span > s.width {
		return 0, fmt.Errorf("%w: %d > %d", ErrSegmentTooWide, span, s.width)
	}

	s.buf.ClearAll()

	// 0 and 1 are not prime.
	for i := lo; i < min(hi, 2); i++ {
		s.buf.Set(uint(i - lo))
	}

	for _, p := range primes {
		pp, err := conv.MulUint64(p, p)
		if err != nil || pp >= hi {
			// Ascending primes: every later square is out of range too.
			break
		}

		first, err := conv.RoundUp(lo, p)
		if err != nil {
			return 0, err
		}
		first = max(first, pp)

		for j := first; j < hi; j += p {
			s.buf.Set(uint(j - lo))
			if hi-j <= p {
				break
			}
		}
	}

	return span - uint64(s.buf.Count()), nil
}
