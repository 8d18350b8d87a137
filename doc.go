// Package primecount counts primes and finds the first k primes with
// interchangeable sequential and concurrent strategies.
//
// # Quick Start
//
//	n, _ := primecount.CountPrimesBelow(1_000_000, runtime.GOMAXPROCS(0), primecount.SegmentedParallel)
//	fmt.Println(n) // 78498
//
//	res, _ := primecount.FindFirstKPrimes(5, 3)
//	fmt.Println(res.Primes) // [2 3 5 7 11]
//
// CountPrimesBelow returns π(n), the number of primes p ≤ n.
//
// # Strategies
//
//   - Sequential: one base prime generator over [0, n] on the calling goroutine
//   - SegmentedParallel: segments of width ⌊√n⌋ dealt round-robin to workers,
//     each with a private buffer and a private sum
//   - SharedSieve: one composite array struck concurrently by all workers
//   - TrialDivision: contiguous blocks, every prime added to a shared total
//
// All strategies return the same count for every worker count ≥ 1.
//
// # Shared State
//
// The shared total, the shared sieve and the early-stop count are created
// under a Policy:
//
//	eng := primecount.New(primecount.WithPolicy(primecount.ReaderWriter))
//
//   - LockFree (default): atomics and compare-and-swap loops
//   - Exclusive: one sync.Mutex
//   - ReaderWriter: one sync.RWMutex, reads take the read lock
//
// # Early Stop
//
// FindFirstKPrimes hands candidates to workers in ascending order and stops
// them as soon as k primes are counted. The shared count never passes k.
//
// # Observability
//
//	eng := primecount.New(
//	    primecount.WithLogger(primecount.NewJSONLogger(slog.LevelDebug)),
//	    primecount.WithMetricsCollector(&primecount.BasicMetricsCollector{}),
//	)
package primecount
