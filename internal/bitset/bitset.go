package bitset

import (
	"math/bits"
	"sync/atomic"
)

const (
	// segmentBits determines the size of each segment.
	// 16 bits = 65536 bits per segment.
	segmentBits = 16
	segmentSize = 1 << segmentBits // 65536 bits
	segmentMask = segmentSize - 1

	// wordsPerSegment is the number of uint64 words in a segment.
	// 65536 bits / 64 bits/word = 1024 words.
	wordsPerSegment = segmentSize / 64
)

// BitSegment is a fixed-size segment of the bitset.
type BitSegment [wordsPerSegment]atomic.Uint64

// BitSet is a thread-safe, lock-free, segmented bitset of fixed size.
//
// The segment table is immutable after New; only the words change.
type BitSet struct {
	segments []*BitSegment
	size     uint64
}

// New creates a new BitSet with the given size (in bits).
func New(size uint64) *BitSet {
	numSegments := (size + segmentSize - 1) >> segmentBits

	segments := make([]*BitSegment, numSegments)
	for i := range segments {
		segments[i] = new(BitSegment)
	}

	return &BitSet{
		segments: segments,
		size:     size,
	}
}

func (b *BitSet) word(i uint64) (*atomic.Uint64, uint64) {
	seg := b.segments[i>>segmentBits]
	offset := i & segmentMask
	return &seg[offset/64], uint64(1) << (offset % 64)
}

// Set sets the bit at the given index. Out of range indexes are ignored.
func (b *BitSet) Set(i uint64) {
	if i >= b.size {
		return
	}
	w, mask := b.word(i)
	w.Or(mask)
}

// TestAndSet sets the bit at the given index and returns true if it was ALREADY set.
//
// Exactly one of several concurrent callers for the same index observes false.
func (b *BitSet) TestAndSet(i uint64) bool {
	if i >= b.size {
		return false
	}
	w, mask := b.word(i)

	// Optimistic check avoids a write on already-set words.
	if w.Load()&mask != 0 {
		return true
	}

	old := w.Or(mask)
	return old&mask != 0
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i uint64) bool {
	if i >= b.size {
		return false
	}
	w, mask := b.word(i)
	return w.Load()&mask != 0
}

// CountRange returns the number of set bits in [lo, hi).
// hi is clipped to the size of the bitset.
func (b *BitSet) CountRange(lo, hi uint64) uint64 {
	hi = min(hi, b.size)
	if lo >= hi {
		return 0
	}

	var count uint64
	for i := lo; i < hi; {
		w, _ := b.word(i)
		bit := i % 64
		n := min(64-bit, hi-i)

		val := w.Load() >> bit
		if n < 64 {
			val &= (uint64(1) << n) - 1
		}
		count += uint64(bits.OnesCount64(val))
		i += n
	}
	return count
}

// Count returns the number of set bits.
func (b *BitSet) Count() uint64 {
	return b.CountRange(0, b.size)
}

// ClearAll clears all bits in the bitset.
func (b *BitSet) ClearAll() {
	for _, seg := range b.segments {
		for i := range seg {
			seg[i].Store(0)
		}
	}
}

// Len returns the size of the bitset in bits.
func (b *BitSet) Len() uint64 {
	return b.size
}
