// Package shared provides the contended state of the parallel coordinators
// behind a pluggable synchronization policy.
//
// Two resources are shared between workers:
//
//   - Counter: the running total (or early-stop count)
//   - Sieve: a composite-flag array over [0, N) plus the set of claimed
//     sieving primes
//
// Each is available under three policies, selected at construction time:
//
//	Policy        Counter                  Sieve
//	Exclusive     sync.Mutex               bits-and-blooms bitset + roaring64 claims, sync.Mutex
//	ReaderWriter  sync.RWMutex (RLock on   same as Exclusive, reads take RLock
//	              Load)
//	LockFree      atomic.Uint64, CAS loop  internal/bitset atomic words (TestAndSet claims)
//
// All policies implement the same contract; coordinators never know which
// one backs them.
package shared
