package sieve

// IsPrime reports whether n is prime by trial division.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	r := Isqrt(n)
	for d := uint64(3); d <= r; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// TrialDivision tests every candidate with IsPrime.
//
// It is the slowest generator and serves as the independent reference.
type TrialDivision struct{}

// Name implements Generator.
func (TrialDivision) Name() string { return "trial-division" }

// Generate implements Generator.
func (TrialDivision) Generate(limit uint64) ([]uint64, error) {
	if limit < 2 {
		return nil, nil
	}

	primes := make([]uint64, 0, estimateCount(limit))
	for n := uint64(2); ; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
		if n == limit {
			break
		}
	}
	return primes, nil
}
