package sieve

import (
	"math"
	"math/bits"
)

// Isqrt returns ⌊√n⌋ exactly.
//
// The float64 estimate is corrected in both directions, so the result is
// exact for every uint64 including values above 2^53.
func Isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}

	x := uint64(math.Sqrt(float64(n)))
	for squareExceeds(x, n) {
		x--
	}
	for !squareExceeds(x+1, n) {
		x++
	}
	return x
}

// squareExceeds reports whether x*x > n without overflow.
func squareExceeds(x, n uint64) bool {
	hi, lo := bits.Mul64(x, x)
	return hi != 0 || lo > n
}
