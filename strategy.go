package primecount

import "fmt"

// Strategy selects the counting algorithm.
type Strategy int

const (
	// Sequential runs the configured generator on one goroutine.
	Sequential Strategy = iota
	// SegmentedParallel runs the segmented sieve on the worker pool.
	SegmentedParallel
	// SharedSieve lets all workers strike into one shared array.
	SharedSieve
	// TrialDivision tests every candidate and counts into a shared total.
	TrialDivision
)

// Strategies returns every supported strategy.
func Strategies() []Strategy {
	return []Strategy{Sequential, SegmentedParallel, SharedSieve, TrialDivision}
}

func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case SegmentedParallel:
		return "segmented"
	case SharedSieve:
		return "shared-sieve"
	case TrialDivision:
		return "trial-division"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy returns the strategy named s.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies() {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}
