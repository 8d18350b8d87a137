// Package bitset provides a lock-free segmented bitset for concurrent access.
//
// Architecture:
//   - Segmented design: 64KB segments (1024 uint64 words = 65536 bits each)
//   - Lock-free: atomic.Uint64 words, fixed segment table built up front
//   - Idempotent marking: concurrent Set of the same bit is harmless
//
// Used internally as the backing store of the lock-free shared sieve
// (struck composites and claimed sieving primes).
package bitset
