// Package promcollector exports primecount metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := promcollector.New(reg)
//	eng := primecount.New(primecount.WithMetricsCollector(mc))
package promcollector

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/primecount"
)

// Namespace prefixes every metric name.
const Namespace = "primecount"

// Collector implements primecount.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency    *prometheus.HistogramVec
	operations   *prometheus.CounterVec
	primes       *prometheus.CounterVec
	scanned      prometheus.Counter
	workers      *prometheus.CounterVec
	largestBound prometheus.Gauge

	maxBound atomic.Uint64
}

var _ primecount.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (c *Collector, err error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// promauto panics on registration errors.
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = errors.New("promcollector: metric registration failed")
		}
	}()

	f := promauto.With(reg)

	return &Collector{
		opLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of count and search operations",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}, []string{"op", "status"}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total operations by kind and outcome",
		}, []string{"op", "status"}),
		primes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "primes_found_total",
			Help:      "Primes counted by successful operations",
		}, []string{"op"}),
		scanned: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_candidates_scanned_total",
			Help:      "Candidates handed out by early-stop searches",
		}),
		workers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_started_total",
			Help:      "Worker goroutines started",
		}, []string{"op"}),
		largestBound: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "largest_bound",
			Help:      "Largest n successfully counted",
		}),
	}, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordCount implements primecount.MetricsCollector.
func (c *Collector) RecordCount(s primecount.Strategy, n, count uint64, d time.Duration, err error) {
	op := s.String()
	c.opLatency.WithLabelValues(op, status(err)).Observe(d.Seconds())
	c.operations.WithLabelValues(op, status(err)).Inc()
	if err != nil {
		return
	}
	c.primes.WithLabelValues(op).Add(float64(count))

	for {
		cur := c.maxBound.Load()
		if n <= cur {
			return
		}
		if c.maxBound.CompareAndSwap(cur, n) {
			c.largestBound.Set(float64(n))
			return
		}
	}
}

// RecordSearch implements primecount.MetricsCollector.
func (c *Collector) RecordSearch(k, scanned uint64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("search", status(err)).Observe(d.Seconds())
	c.operations.WithLabelValues("search", status(err)).Inc()
	c.scanned.Add(float64(scanned))
	if err == nil {
		c.primes.WithLabelValues("search").Add(float64(k))
	}
}

// RecordWorkers implements primecount.MetricsCollector.
func (c *Collector) RecordWorkers(op string, workers int) {
	c.workers.WithLabelValues(op).Add(float64(workers))
}
