package sieve

// Eratosthenes is the classic sieve of Eratosthenes.
type Eratosthenes struct{}

// Name implements Generator.
func (Eratosthenes) Name() string { return "eratosthenes" }

// Generate implements Generator.
func (Eratosthenes) Generate(limit uint64) ([]uint64, error) {
	if limit < 2 {
		return nil, nil
	}

	composite, err := flagsFor(limit)
	if err != nil {
		return nil, err
	}
	composite[0], composite[1] = true, true

	// p <= ⌊√limit⌋ keeps p*p within limit.
	r := Isqrt(limit)
	for p := uint64(2); p <= r; p++ {
		if composite[p] {
			continue
		}
		for i := p * p; i <= limit; i += p {
			composite[i] = true
		}
	}

	primes := make([]uint64, 0, estimateCount(limit))
	for i, c := range composite {
		if !c {
			primes = append(primes, uint64(i))
		}
	}
	return primes, nil
}
