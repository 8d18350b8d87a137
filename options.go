package primecount

import (
	"log/slog"

	"github.com/hupe1980/primecount/sieve"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	policy           Policy
	generator        sieve.Generator
	segmentWidth     uint64
	memoryLimit      int64
	progressRate     float64
	observer         CountObserver
}

// CountObserver receives every accepted increment of FindFirstKPrimes:
// the prime that was counted and the shared count after the increment.
// Calls are serialized and arrive in ascending prime order, so the counted
// primes are exactly the first k. The hook runs on a worker goroutine and
// must not block.
type CountObserver func(prime, count uint64)

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &primecount.BasicMetricsCollector{}
//	eng := primecount.New(primecount.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Counts: %d, Avg latency: %dns\n", stats.CountCalls, stats.CountAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := primecount.NewJSONLogger(slog.LevelInfo)
//	eng := primecount.New(primecount.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithPolicy selects the synchronization discipline of the shared total,
// the shared sieve and the early-stop count. Defaults to LockFree.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithGenerator sets the base prime generator. It runs the Sequential
// strategy and produces the base primes of SegmentedParallel.
// Defaults to sieve.Eratosthenes.
func WithGenerator(g sieve.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithSegmentWidth overrides the segment width of SegmentedParallel.
// 0 (the default) uses ⌊√n⌋.
func WithSegmentWidth(width uint64) Option {
	return func(o *options) {
		o.segmentWidth = width
	}
}

// WithMemoryLimit caps the sieve buffer memory held by the engine's running
// calls, in bytes. A call that does not fit fails with ErrMemoryLimit.
// 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithProgressRate sets how many debug progress events per second workers
// may log. 0 (the default) disables progress events.
func WithProgressRate(eventsPerSec float64) Option {
	return func(o *options) {
		o.progressRate = eventsPerSec
	}
}

// WithCountObserver registers a hook that sees every accepted increment of
// FindFirstKPrimes.
func WithCountObserver(fn CountObserver) Option {
	return func(o *options) {
		o.observer = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		policy:           LockFree,
		generator:        sieve.Eratosthenes{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
