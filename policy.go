package primecount

import "github.com/hupe1980/primecount/internal/shared"

// Policy selects the synchronization discipline of shared state.
type Policy = shared.Policy

const (
	// LockFree uses atomic operations only.
	LockFree = shared.LockFree
	// Exclusive guards every access with one mutex.
	Exclusive = shared.Exclusive
	// ReaderWriter lets reads share a read lock.
	ReaderWriter = shared.ReaderWriter
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized name.
var ErrUnknownPolicy = shared.ErrUnknownPolicy

// Policies returns every supported policy.
func Policies() []Policy { return shared.Policies() }

// ParsePolicy returns the policy named s ("lock-free", "exclusive" or "reader-writer").
func ParsePolicy(s string) (Policy, error) { return shared.ParsePolicy(s) }
