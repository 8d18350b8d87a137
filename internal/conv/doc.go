// Package conv provides checked integer conversion and arithmetic.
//
// Every helper reports ErrOverflow instead of wrapping silently. Sieve
// boundaries (p², rounding a segment start up to a multiple of p, the
// quadratic forms of the Atkin sieve) and allocation sizes go through here.
//
// For arithmetic that is provably bounded by domain constraints (loop
// indices below an already validated limit), use plain operators instead.
package conv
