package sieve

// wheelGaps walks the residues coprime to 30 starting at 7:
// 7, 11, 13, 17, 19, 23, 29, 31, 37, ...
var wheelGaps = [8]uint64{4, 2, 4, 2, 4, 6, 2, 6}

// Wheel30 is a sieve of Eratosthenes restricted to the wheel mod 30.
//
// Multiples of 2, 3 and 5 are never visited; only residues coprime to 30
// are tested and struck.
type Wheel30 struct{}

// Name implements Generator.
func (Wheel30) Name() string { return "wheel30" }

// Generate implements Generator.
func (Wheel30) Generate(limit uint64) ([]uint64, error) {
	if limit < 2 {
		return nil, nil
	}

	composite, err := flagsFor(limit)
	if err != nil {
		return nil, err
	}

	primes := make([]uint64, 0, estimateCount(limit))
	for _, p := range [3]uint64{2, 3, 5} {
		if p <= limit {
			primes = append(primes, p)
		}
	}

	r := Isqrt(limit)
	for p, g := uint64(7), 0; p <= r; p, g = p+wheelGaps[g], (g+1)%len(wheelGaps) {
		if composite[p] {
			continue
		}
		// Even multiples are never candidates, so step by 2p.
		for i := p * p; i <= limit; i += 2 * p {
			composite[i] = true
		}
	}

	for p, g := uint64(7), 0; p <= limit; p, g = p+wheelGaps[g], (g+1)%len(wheelGaps) {
		if !composite[p] {
			primes = append(primes, p)
		}
		if limit-p < wheelGaps[g] {
			break
		}
	}
	return primes, nil
}
