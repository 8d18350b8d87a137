// Package engine implements the prime counting coordinators.
//
// Every coordinator is a single call that creates its workers, shared state
// and buffers, joins the workers and discards everything before returning:
//   - CountSequential runs one base prime generator over the whole range
//   - CountSegmented sieves disjoint segments with private buffers and merges
//     one partial sum per worker into the shared total
//   - CountSharedSieve lets all workers strike into one shared array
//   - CountTrialDivision adds every prime found to the shared total
//   - FindFirstK searches for the first k primes and stops early
//
// Shared state is created under a shared.Policy chosen by the caller.
package engine
