// Package pool recycles segment buffers across sieve runs.
// Uses sync.Pool for automatic memory reuse.
package pool

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// MaxPooledBits caps the buffers kept for reuse; larger ones are left to the GC.
const MaxPooledBits = 1 << 24

var bufferPool = sync.Pool{
	New: func() any {
		return new(bitset.BitSet)
	},
}

// Get returns a cleared bitset of at least bits bits.
func Get(bits uint) *bitset.BitSet {
	b := bufferPool.Get().(*bitset.BitSet)
	if b.Len() < bits {
		// Reallocate rather than grow; the old contents are not needed.
		return bitset.New(bits)
	}
	b.ClearAll()
	return b
}

// Put returns b to the pool for reuse.
func Put(b *bitset.BitSet) {
	if b == nil || b.Len() > MaxPooledBits {
		return
	}
	bufferPool.Put(b)
}
