// Package testutil provides testing utilities for primecount.
//
// This package is intended for use in tests and benchmarks only.
//
// # Sampled Bounds
//
//	rng := testutil.NewRNG(seed)
//	for _, n := range rng.Bounds(50, 10_000) {
//	    // compare a strategy against testutil.PrimePi(n)
//	}
package testutil
