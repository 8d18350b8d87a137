package shared

import (
	"errors"
	"fmt"
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized name.
var ErrUnknownPolicy = errors.New("unknown policy")

// Policy selects the synchronization discipline for shared state.
type Policy int

const (
	// LockFree uses atomic operations only.
	LockFree Policy = iota
	// Exclusive guards every access with a single mutex.
	Exclusive
	// ReaderWriter lets reads proceed concurrently under a read lock.
	ReaderWriter
)

// Policies returns every supported policy.
func Policies() []Policy {
	return []Policy{LockFree, Exclusive, ReaderWriter}
}

func (p Policy) String() string {
	switch p {
	case LockFree:
		return "lock-free"
	case Exclusive:
		return "exclusive"
	case ReaderWriter:
		return "reader-writer"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy returns the policy named s.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies() {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
