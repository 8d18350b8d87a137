package segment

import (
	"errors"
	"iter"
)

// ErrInvalidWidth is returned when a plan is requested with a zero width.
var ErrInvalidWidth = errors.New("segment width must be positive")

// Segment is the half-open range [Lo, Hi).
type Segment struct {
	Lo uint64
	Hi uint64
}

// Width returns the number of integers in the segment.
func (s Segment) Width() uint64 {
	if s.Hi <= s.Lo {
		return 0
	}
	return s.Hi - s.Lo
}

// Plan is the ordered segment layout of [width, limit).
//
// Segments are computed on demand, so a plan for a huge limit costs nothing
// until it is walked.
type Plan struct {
	width uint64
	limit uint64
}

// NewPlan creates the plan for [width, limit) with segments of the given width.
func NewPlan(limit, width uint64) (Plan, error) {
	if width == 0 {
		return Plan{}, ErrInvalidWidth
	}
	return Plan{width: width, limit: limit}, nil
}

// Width returns the segment width (and the end of the base range).
func (p Plan) Width() uint64 { return p.width }

// Limit returns the exclusive upper bound of the plan.
func (p Plan) Limit() uint64 { return p.limit }

// Len returns the number of segments: ⌈(limit − width) / width⌉.
func (p Plan) Len() uint64 {
	if p.limit <= p.width {
		return 0
	}
	span := p.limit - p.width
	n := span / p.width
	if span%p.width != 0 {
		n++
	}
	return n
}

// At returns the i-th segment. i must be below Len.
func (p Plan) At(i uint64) Segment {
	lo := p.width + i*p.width
	return Segment{Lo: lo, Hi: lo + min(p.width, p.limit-lo)}
}

// All yields every segment in order.
func (p Plan) All() iter.Seq[Segment] {
	return p.Assign(0, 1)
}

// Assign yields the round-robin share of worker out of workers:
// segments worker, worker+workers, worker+2·workers, ...
func (p Plan) Assign(worker, workers int) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if worker < 0 || workers < 1 || worker >= workers {
			return
		}
		n := p.Len()
		step := uint64(workers)
		for i := uint64(worker); i < n; i += step {
			if !yield(p.At(i)) {
				return
			}
		}
	}
}
