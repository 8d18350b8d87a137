package shared

import (
	"sync"
	"sync/atomic"
)

// Counter is the shared running total.
type Counter interface {
	// Add adds delta and returns the new value.
	Add(delta uint64) uint64

	// Load returns the current value.
	Load() uint64

	// IncrementUntil increments the counter by one unless it has already
	// reached target. The comparison and the increment are one indivisible
	// step, so the counter never passes target and exactly one caller
	// observes value == target with ok == true.
	IncrementUntil(target uint64) (value uint64, ok bool)
}

// NewCounter returns a Counter with the given initial value under policy p.
func NewCounter(p Policy, initial uint64) (Counter, error) {
	switch p {
	case LockFree:
		c := &atomicCounter{}
		c.v.Store(initial)
		return c, nil
	case Exclusive:
		return &mutexCounter{v: initial}, nil
	case ReaderWriter:
		return &rwCounter{v: initial}, nil
	default:
		return nil, ErrUnknownPolicy
	}
}

type atomicCounter struct {
	v atomic.Uint64
}

func (c *atomicCounter) Add(delta uint64) uint64 { return c.v.Add(delta) }

func (c *atomicCounter) Load() uint64 { return c.v.Load() }

func (c *atomicCounter) IncrementUntil(target uint64) (uint64, bool) {
	for {
		cur := c.v.Load()
		if cur >= target {
			return cur, false
		}
		if c.v.CompareAndSwap(cur, cur+1) {
			return cur + 1, true
		}
	}
}

type mutexCounter struct {
	mu sync.Mutex
	v  uint64
}

func (c *mutexCounter) Add(delta uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v += delta
	return c.v
}

func (c *mutexCounter) Load() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.v
}

func (c *mutexCounter) IncrementUntil(target uint64) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v >= target {
		return c.v, false
	}
	c.v++
	return c.v, true
}

type rwCounter struct {
	mu sync.RWMutex
	v  uint64
}

func (c *rwCounter) Add(delta uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v += delta
	return c.v
}

func (c *rwCounter) Load() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.v
}

func (c *rwCounter) IncrementUntil(target uint64) (uint64, bool) {
	// Cheap rejection once the target is reached.
	c.mu.RLock()
	done := c.v >= target
	v := c.v
	c.mu.RUnlock()
	if done {
		return v, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v >= target {
		return c.v, false
	}
	c.v++
	return c.v, true
}
