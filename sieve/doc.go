// Package sieve provides the leaf prime generators.
//
// Every Generator honors one contract: given a limit, produce exactly the
// primes p <= limit in ascending order. The parallel coordinators consume any
// of them for their base primes without caring which method produced them.
//
// # Generators
//
//   - Eratosthenes: classic sieve, strikes multiples from p² (default)
//   - Atkin: quadratic-form sieve of Atkin
//   - Wheel30: sieve restricted to residues coprime to 30
//   - TrialDivision: IsPrime over every candidate (reference implementation)
//
// # Usage
//
//	primes, err := sieve.Eratosthenes{}.Generate(100)
//	// primes = [2 3 5 7 ... 97]
//
//	g, err := sieve.Lookup("atkin")
//
// # Overflow
//
// Allocation sizes and the quadratic terms of the Atkin sieve use checked or
// saturating arithmetic. A limit whose sieve array cannot be addressed returns
// an error wrapping conv.ErrOverflow instead of wrapping around.
package sieve
