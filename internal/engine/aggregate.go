package engine

import (
	"golang.org/x/sys/cpu"

	"github.com/hupe1980/primecount/internal/conv"
)

// Merge returns the sum of partials. The order of partials does not matter.
func Merge(partials []uint64) (uint64, error) {
	var total uint64
	for _, p := range partials {
		var err error
		if total, err = conv.AddUint64(total, p); err != nil {
			return 0, err
		}
	}
	return total, nil
}

type partialSlot struct {
	_ cpu.CacheLinePad
	v uint64
}

// Partials holds one running count per worker. Each slot sits on its own
// cache line, and slot i must only be touched by worker i.
type Partials struct {
	slots []partialSlot
}

// NewPartials returns zeroed slots for n workers.
func NewPartials(n int) *Partials {
	return &Partials{slots: make([]partialSlot, n)}
}

// Add adds delta to the slot of worker.
func (p *Partials) Add(worker int, delta uint64) {
	p.slots[worker].v += delta
}

// Values returns a copy of every slot.
func (p *Partials) Values() []uint64 {
	out := make([]uint64, len(p.slots))
	for i := range p.slots {
		out[i] = p.slots[i].v
	}
	return out
}

// Sum merges all slots. Call it only after the workers have been joined.
func (p *Partials) Sum() (uint64, error) {
	return Merge(p.Values())
}
