package primecount

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/primecount/internal/engine"
	"github.com/hupe1980/primecount/internal/resource"
)

// SearchResult describes a finished FindFirstKPrimes call.
type SearchResult struct {
	// K is the requested number of primes.
	K uint64
	// Kth is the k-th prime.
	Kth uint64
	// Primes are the first K primes in ascending order.
	Primes []uint64
	// Counted is the final shared count. It always equals K.
	Counted uint64
	// Scanned is the number of candidates handed out to workers.
	Scanned uint64
}

// Engine runs prime counts and searches. It holds no state between calls
// other than its configuration and memory budget, and is safe for
// concurrent use.
type Engine struct {
	opts      options
	resources *resource.Controller
	metrics   MetricsCollector
	logger    *Logger
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	opts := applyOptions(optFns)

	return &Engine{
		opts: opts,
		resources: resource.NewController(resource.Config{
			MemoryLimitBytes:     opts.memoryLimit,
			ProgressEventsPerSec: opts.progressRate,
		}),
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

func (e *Engine) config() engine.Config {
	cfg := engine.Config{
		Logger:       e.logger.Logger,
		Policy:       e.opts.policy,
		Generator:    e.opts.generator,
		Resources:    e.resources,
		SegmentWidth: e.opts.segmentWidth,
	}
	if e.opts.observer != nil {
		cfg.Observer = engine.Observer(e.opts.observer)
	}
	return cfg
}

// CountPrimesBelow returns π(n), the number of primes p ≤ n, using strategy
// with the given number of workers. n < 2 yields 0.
//
// workers must be at least 1 for every strategy; Sequential runs on the
// calling goroutine regardless.
func (e *Engine) CountPrimesBelow(ctx context.Context, n uint64, workers int, strategy Strategy) (uint64, error) {
	start := time.Now()

	count, err := e.count(ctx, n, workers, strategy)
	err = translateError(err)

	e.metrics.RecordCount(strategy, n, count, time.Since(start), err)
	e.logger.LogCount(ctx, strategy, n, workers, count, err)

	if err != nil {
		return 0, err
	}
	return count, nil
}

func (e *Engine) count(ctx context.Context, n uint64, workers int, strategy Strategy) (uint64, error) {
	if workers < 1 {
		return 0, ErrInvalidWorkerCount
	}

	cfg := e.config()

	switch strategy {
	case Sequential:
		e.metrics.RecordWorkers(strategy.String(), 1)
		return engine.CountSequential(ctx, cfg, n)
	case SegmentedParallel:
		e.metrics.RecordWorkers(strategy.String(), workers)
		return engine.CountSegmented(ctx, cfg, n, workers)
	case SharedSieve:
		e.metrics.RecordWorkers(strategy.String(), workers)
		return engine.CountSharedSieve(ctx, cfg, n, workers)
	case TrialDivision:
		e.metrics.RecordWorkers(strategy.String(), workers)
		return engine.CountTrialDivision(ctx, cfg, n, workers)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// FindFirstKPrimes finds the first k primes with the given number of workers.
// The search stops as soon as k primes are counted; the count never passes k.
func (e *Engine) FindFirstKPrimes(ctx context.Context, k uint64, workers int) (SearchResult, error) {
	start := time.Now()

	res, err := e.search(ctx, k, workers)
	err = translateError(err)

	e.metrics.RecordSearch(k, res.Scanned, time.Since(start), err)
	e.logger.LogSearch(ctx, k, workers, res.Kth, err)

	if err != nil {
		return SearchResult{}, err
	}
	return res, nil
}

func (e *Engine) search(ctx context.Context, k uint64, workers int) (SearchResult, error) {
	if workers < 1 {
		return SearchResult{}, ErrInvalidWorkerCount
	}
	if k == 0 {
		return SearchResult{}, ErrInvalidK
	}

	e.metrics.RecordWorkers(searchOperation, workers)

	res, err := engine.FindFirstK(ctx, e.config(), k, workers)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		K:       res.K,
		Kth:     res.Kth,
		Primes:  res.Primes,
		Counted: res.Counted,
		Scanned: res.Scanned,
	}, nil
}

// searchOperation labels FindFirstKPrimes in RecordWorkers.
const searchOperation = "search"

var defaultEngine = New()

// CountPrimesBelow returns π(n) using a default Engine and context.Background().
func CountPrimesBelow(n uint64, workers int, strategy Strategy) (uint64, error) {
	return defaultEngine.CountPrimesBelow(context.Background(), n, workers, strategy)
}

// FindFirstKPrimes finds the first k primes using a default Engine and
// context.Background().
func FindFirstKPrimes(k uint64, workers int) (SearchResult, error) {
	return defaultEngine.FindFirstKPrimes(context.Background(), k, workers)
}
