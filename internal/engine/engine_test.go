package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/internal/resource"
	"github.com/hupe1980/primecount/internal/shared"
	"github.com/hupe1980/primecount/internal/workers"
	"github.com/hupe1980/primecount/sieve"
	"github.com/hupe1980/primecount/testutil"
)

type countFunc func(ctx context.Context, cfg Config, n uint64, count int) (uint64, error)

func coordinators() map[string]countFunc {
	return map[string]countFunc{
		"segmented":      CountSegmented,
		"shared-sieve":   CountSharedSieve,
		"trial-division": CountTrialDivision,
		"sequential": func(ctx context.Context, cfg Config, n uint64, _ int) (uint64, error) {
			return CountSequential(ctx, cfg, n)
		},
	}
}


func TestCoordinators_Boundaries(t *testing.T) {
	cases := []struct {
		n    uint64
		want uint64
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {10, 4}, {100, 25}, {1000, 168},
	}

	for name, fn := range coordinators() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range cases {
				got, err := fn(t.Context(), Config{}, tc.n, 4)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got, "n=%d", tc.n)
			}
		})
	}
}

func TestCoordinators_AgreeAcrossWorkersAndPolicies(t *testing.T) {
	ns := []uint64{5, 17, 49, 97, 121, 1000, 4096, 9973, 10_000}
	want := make(map[uint64]uint64, len(ns))
	for _, n := range ns {
		want[n] = testutil.PrimePi(n)
	}

	for name, fn := range coordinators() {
		for _, p := range shared.Policies() {
			for _, w := range []int{1, 2, 4, 16} {
				for _, n := range ns {
					got, err := fn(t.Context(), Config{Policy: p}, n, w)
					require.NoError(t, err)
					assert.Equal(t, want[n], got, "%s policy=%s workers=%d n=%d", name, p, w, n)
				}
			}
		}
	}
}

func TestCoordinators_SampledReference(t *testing.T) {
	rng := testutil.NewRNG(4711)
	bounds := rng.Bounds(40, 10_000)

	for name, fn := range coordinators() {
		for _, n := range bounds {
			w := 1 + rng.Intn(16)
			got, err := fn(t.Context(), Config{}, n, w)
			require.NoError(t, err)
			assert.Equal(t, testutil.PrimePi(n), got, "%s workers=%d n=%d", name, w, n)
		}
	}
}

func TestCountSegmented_Large(t *testing.T) {
	got, err := CountSegmented(t.Context(), Config{}, 1_000_000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(78498), got)
}

func TestCountSegmented_SegmentWidths(t *testing.T) {
	for _, width := range []uint64{1, 2, 3, 7, 50, 101, 5000} {
		got, err := CountSegmented(t.Context(), Config{SegmentWidth: width}, 1000, 3)
		require.NoError(t, err)
		assert.Equal(t, uint64(168), got, "width=%d", width)
	}
}

func TestCountSequential_Generators(t *testing.T) {
	for _, name := range sieve.Names() {
		gen, err := sieve.Lookup(name)
		require.NoError(t, err)

		got, err := CountSequential(t.Context(), Config{Generator: gen}, 10_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(1229), got, name)

		got, err = CountSegmented(t.Context(), Config{Generator: gen}, 10_000, 4)
		require.NoError(t, err)
		assert.Equal(t, uint64(1229), got, name)
	}
}

func TestCoordinators_Idempotent(t *testing.T) {
	for name, fn := range coordinators() {
		first, err := fn(t.Context(), Config{}, 5000, 4)
		require.NoError(t, err)
		second, err := fn(t.Context(), Config{}, 5000, 4)
		require.NoError(t, err)
		assert.Equal(t, first, second, name)
	}
}

func TestCoordinators_Overflow(t *testing.T) {
	for name, fn := range coordinators() {
		_, err := fn(t.Context(), Config{}, math.MaxUint64, 2)
		assert.ErrorIs(t, err, conv.ErrOverflow, name)
	}
}

func TestCoordinators_InvalidWorkerCount(t *testing.T) {
	for name, fn := range coordinators() {
		if name == "sequential" {
			continue
		}
		_, err := fn(t.Context(), Config{}, 100, 0)
		assert.ErrorIs(t, err, workers.ErrInvalidCount, name)
	}

	_, err := FindFirstK(t.Context(), Config{}, 5, 0)
	assert.ErrorIs(t, err, workers.ErrInvalidCount)
}

func TestCoordinators_UnknownPolicy(t *testing.T) {
	for name, fn := range coordinators() {
		if name == "sequential" {
			continue
		}
		_, err := fn(t.Context(), Config{Policy: shared.Policy(99)}, 100, 2)
		assert.ErrorIs(t, err, shared.ErrUnknownPolicy, name)
	}
}

func TestCoordinators_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	for name, fn := range coordinators() {
		_, err := fn(ctx, Config{}, 100_000, 4)
		assert.ErrorIs(t, err, context.Canceled, name)
	}

	_, err := FindFirstK(ctx, Config{}, 100, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountSegmented_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 2000})

	// The base sieve needs 1001 bytes and is released before the workers
	// start. Width 80000 needs a 10000 byte buffer per worker.
	_, err := CountSegmented(t.Context(), Config{Resources: rc, SegmentWidth: 80_000}, 1000, 2)
	require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	var fe *workers.FaultError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, int64(0), rc.MemoryUsage(), "reservations are released")
}

func TestCountSegmented_BasePrimesMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 512})

	_, err := CountSegmented(t.Context(), Config{Resources: rc, SegmentWidth: 1000}, 1_000_000, 2)
	require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)

	var fe *workers.FaultError
	assert.False(t, errors.As(err, &fe), "fails before any worker starts")
	assert.Equal(t, int64(0), rc.MemoryUsage())

	// Near the top of the range the base sieve alone would need about 4 GiB.
	rc = resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	_, err = CountSegmented(t.Context(), Config{Resources: rc}, math.MaxUint64-1, 2)
	require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestCountSequential_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1000})

	got, err := CountSequential(t.Context(), Config{Resources: rc}, 999)
	require.NoError(t, err)
	assert.Equal(t, uint64(168), got)

	_, err = CountSequential(t.Context(), Config{Resources: rc}, 1000)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestCountSharedSieve_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})

	_, err := CountSharedSieve(t.Context(), Config{Resources: rc}, 1_000_000, 2)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
}

type failingGenerator struct{}

func (failingGenerator) Name() string { return "failing" }

func (failingGenerator) Generate(uint64) ([]uint64, error) {
	return nil, errors.New("boom")
}

func TestCountSegmented_GeneratorError(t *testing.T) {
	_, err := CountSegmented(t.Context(), Config{Generator: failingGenerator{}}, 100, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

type panickingGenerator struct{}

func (panickingGenerator) Name() string { return "panicking" }

// Generate returns a base prime list with a zero, which makes the segment
// sieve divide by zero inside a worker.
func (panickingGenerator) Generate(limit uint64) ([]uint64, error) {
	return []uint64{0}, nil
}

func TestCountSegmented_WorkerPanic(t *testing.T) {
	_, err := CountSegmented(t.Context(), Config{Generator: panickingGenerator{}}, 100, 3)
	require.Error(t, err)

	var fe *workers.FaultError
	require.ErrorAs(t, err, &fe)

	var pe *workers.PanicError
	assert.ErrorAs(t, err, &pe)
}

func TestFindFirstK(t *testing.T) {
	var (
		mu       sync.Mutex
		accepted []uint64
		counts   []uint64
	)
	cfg := Config{Observer: func(prime, count uint64) {
		mu.Lock()
		defer mu.Unlock()
		accepted = append(accepted, prime)
		counts = append(counts, count)
	}}

	res, err := FindFirstK(t.Context(), cfg, 5, 3)
	require.NoError(t, err)

	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, res.Primes)
	assert.Equal(t, uint64(11), res.Kth)
	assert.Equal(t, uint64(5), res.K)
	assert.Equal(t, uint64(5), res.Counted)
	assert.GreaterOrEqual(t, res.Scanned, uint64(10))

	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, accepted)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, counts)
}

func TestFindFirstK_PoliciesAndWorkers(t *testing.T) {
	want, err := sieve.Eratosthenes{}.Generate(7919) // the 1000th prime
	require.NoError(t, err)

	for _, p := range shared.Policies() {
		for _, w := range []int{1, 2, 4, 16} {
			var accepted []uint64
			cfg := Config{Policy: p, Observer: func(prime, _ uint64) {
				accepted = append(accepted, prime)
			}}

			res, err := FindFirstK(t.Context(), cfg, 1000, w)
			require.NoError(t, err)
			assert.Equal(t, want, res.Primes, "policy=%s workers=%d", p, w)
			assert.Equal(t, want, accepted, "policy=%s workers=%d", p, w)
			assert.Equal(t, uint64(7919), res.Kth)
			assert.Equal(t, uint64(1000), res.Counted)
		}
	}
}

func TestFindFirstK_CountsFirstPrimesInOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("large k")
	}

	const k = 100_000
	want, err := sieve.Eratosthenes{}.Generate(1_299_709) // the 100000th prime
	require.NoError(t, err)
	require.Len(t, want, k)

	for _, p := range shared.Policies() {
		var (
			accepted []uint64
			counts   []uint64
		)
		cfg := Config{Policy: p, Observer: func(prime, count uint64) {
			accepted = append(accepted, prime)
			counts = append(counts, count)
		}}

		res, err := FindFirstK(t.Context(), cfg, k, 16)
		require.NoError(t, err)

		assert.Equal(t, want, accepted, "policy=%s", p)
		assert.Equal(t, want, res.Primes, "policy=%s", p)
		assert.Equal(t, uint64(k), res.Counted)
		assert.NotContains(t, accepted, uint64(1_299_721), "the 100001st prime is never counted")
		for i, c := range counts {
			if !assert.Equal(t, uint64(i+1), c, "policy=%s", p) {
				break
			}
		}
	}
}

func TestCommitLog_OutOfOrder(t *testing.T) {
	l := newCommitLog(2)

	var committed []uint64
	commit := func(p uint64) bool {
		committed = append(committed, p)
		return len(committed) == 3
	}

	assert.False(t, l.resolve(5, true, commit))
	assert.False(t, l.resolve(4, false, commit))
	assert.Empty(t, committed, "2 and 3 are unresolved")

	assert.False(t, l.resolve(3, true, commit))
	assert.Empty(t, committed)

	assert.True(t, l.resolve(2, true, commit))
	assert.Equal(t, []uint64{2, 3, 5}, committed)

	assert.True(t, l.resolve(7, true, commit), "done stays done")
	assert.Equal(t, []uint64{2, 3, 5}, committed)
	assert.True(t, l.found.Contains(7))
}

func TestFindFirstK_InvalidK(t *testing.T) {
	_, err := FindFirstK(t.Context(), Config{}, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestMerge(t *testing.T) {
	total, err := Merge([]uint64{3, 0, 7, 15})
	require.NoError(t, err)
	assert.Equal(t, uint64(25), total)

	total, err = Merge(nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = Merge([]uint64{math.MaxUint64, 1})
	assert.ErrorIs(t, err, conv.ErrOverflow)
}

func TestPartials(t *testing.T) {
	p := NewPartials(4)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				p.Add(w, uint64(w))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []uint64{0, 1000, 2000, 3000}, p.Values())
	sum, err := p.Sum()
	require.NoError(t, err)
	assert.Equal(t, uint64(6000), sum)
}

func TestSplitRange(t *testing.T) {
	blocks := splitRange(2, 13, 4)
	require.Len(t, blocks, 4)

	next := uint64(2)
	for _, b := range blocks {
		assert.Equal(t, next, b.Lo)
		assert.LessOrEqual(t, b.Width(), uint64(3))
		assert.GreaterOrEqual(t, b.Width(), uint64(2))
		next = b.Hi
	}
	assert.Equal(t, uint64(13), next)

	// More workers than integers leaves empty blocks.
	blocks = splitRange(2, 4, 5)
	var covered uint64
	for _, b := range blocks {
		covered += b.Width()
	}
	assert.Equal(t, uint64(2), covered)
}

func TestFirstPrimes(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13}, firstPrimes(6))
	assert.Empty(t, firstPrimes(0))
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rc := resource.NewController(resource.Config{ProgressEventsPerSec: 1000})

	_, err := CountSegmented(t.Context(), Config{Logger: logger, Resources: rc}, 10_000, 2)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Segmented count started")
	require.Contains(t, out, "Segmented count done")
	require.Contains(t, out, `"count":1229`)
	require.Contains(t, out, "Segment sieved")
}
