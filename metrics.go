package primecount

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package promcollector).
//
// The engine reports durations only through this interface; results never
// depend on it.
type MetricsCollector interface {
	// RecordCount is called after each CountPrimesBelow.
	// count is the result, err is nil if successful.
	RecordCount(s Strategy, n, count uint64, duration time.Duration, err error)

	// RecordSearch is called after each FindFirstKPrimes.
	// scanned is the number of candidates handed out to workers.
	RecordSearch(k, scanned uint64, duration time.Duration, err error)

	// RecordWorkers is called before a run starts its worker goroutines.
	// operation is a Strategy name or "search".
	RecordWorkers(operation string, workers int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCount(Strategy, uint64, uint64, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(uint64, uint64, time.Duration, error)          {}
func (NoopMetricsCollector) RecordWorkers(string, int)                                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CountCalls       atomic.Int64
	CountErrors      atomic.Int64
	CountTotalNanos  atomic.Int64
	SearchCalls      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	Scanned          atomic.Uint64
	WorkersStarted   atomic.Int64
}

// RecordCount implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCount(_ Strategy, _, _ uint64, duration time.Duration, err error) {
	b.CountCalls.Add(1)
	b.CountTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CountErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_, scanned uint64, duration time.Duration, err error) {
	b.SearchCalls.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.Scanned.Add(scanned)
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordWorkers implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWorkers(_ string, workers int) {
	b.WorkersStarted.Add(int64(workers))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CountCalls:     b.CountCalls.Load(),
		CountErrors:    b.CountErrors.Load(),
		CountAvgNanos:  avg(b.CountTotalNanos.Load(), b.CountCalls.Load()),
		SearchCalls:    b.SearchCalls.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCalls.Load()),
		Scanned:        b.Scanned.Load(),
		WorkersStarted: b.WorkersStarted.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CountCalls     int64
	CountErrors    int64
	CountAvgNanos  int64
	SearchCalls    int64
	SearchErrors   int64
	SearchAvgNanos int64
	Scanned        uint64
	WorkersStarted int64
}
