package sieve

import "github.com/hupe1980/primecount/internal/conv"

// Atkin is the sieve of Atkin.
//
// Candidates are toggled by the quadratic forms 4x²+y², 3x²+y² and 3x²-y²
// (x > y) according to their residue mod 12, then multiples of squares of
// the survivors are removed.
type Atkin struct{}

// Name implements Generator.
func (Atkin) Name() string { return "atkin" }

// Generate implements Generator.
func (Atkin) Generate(limit uint64) ([]uint64, error) {
	if limit < 2 {
		return nil, nil
	}

	candidate, err := flagsFor(limit)
	if err != nil {
		return nil, err
	}

	r := Isqrt(limit)
	for x := uint64(1); x <= r; x++ {
		xx := x * x
		for y := uint64(1); y <= r; y++ {
			yy := y * y

			// 4x² may exceed uint64 for limits near the top of the range;
			// saturation keeps the comparison against limit correct.
			n := conv.SaturatingAdd(conv.SaturatingMul(4, xx), yy)
			if n <= limit && (n%12 == 1 || n%12 == 5) {
				candidate[n] = !candidate[n]
			}

			n = conv.SaturatingAdd(conv.SaturatingMul(3, xx), yy)
			if n <= limit && n%12 == 7 {
				candidate[n] = !candidate[n]
			}

			if x > y {
				n = conv.SaturatingMul(3, xx) - yy
				if n <= limit && n%12 == 11 {
					candidate[n] = !candidate[n]
				}
			}
		}
	}

	for p := uint64(5); p <= r; p++ {
		if !candidate[p] {
			continue
		}
		pp := p * p
		for i := pp; i <= limit; i += pp {
			candidate[i] = false
		}
	}

	primes := make([]uint64, 0, estimateCount(limit))
	primes = append(primes, 2)
	if limit >= 3 {
		primes = append(primes, 3)
	}
	for i := uint64(5); i <= limit; i++ {
		if candidate[i] {
			primes = append(primes, i)
		}
	}
	return primes, nil
}
