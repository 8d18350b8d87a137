package engine

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/primecount/internal/conv"
	"github.com/hupe1980/primecount/internal/shared"
	"github.com/hupe1980/primecount/internal/workers"
	"github.com/hupe1980/primecount/sieve"
)

// SearchResult describes a finished early-stop search.
type SearchResult struct {
	// K is the requested number of primes.
	K uint64
	// Kth is the k-th prime.
	Kth uint64
	// Primes are the first K primes in ascending order.
	Primes []uint64
	// Counted is the final value of the shared count. It always equals K.
	Counted uint64
	// Scanned is the number of candidates handed out to workers.
	Scanned uint64
}

// commitLog accepts resolved candidates in any order and commits them in
// ascending order. A candidate is committed only once every smaller
// candidate has been resolved.
type commitLog struct {
	mu       sync.Mutex
	next     uint64
	resolved *roaring64.Bitmap
	found    *roaring64.Bitmap
	done     bool
}

func newCommitLog(first uint64) *commitLog {
	return &commitLog{
		next:     first,
		resolved: roaring64.New(),
		found:    roaring64.New(),
	}
}

// resolve records the outcome for c and commits every candidate that is now
// contiguous with the watermark. commit is called for each committed prime
// in ascending order and returns true once no further commits are wanted.
// resolve reports whether that point has been reached.
func (l *commitLog) resolve(c uint64, prime bool, commit func(p uint64) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prime {
		l.found.Add(c)
	}
	if l.done {
		return true
	}

	l.resolved.Add(c)
	for l.resolved.Contains(l.next) {
		l.resolved.Remove(l.next)
		p := l.next
		l.next++
		if l.found.Contains(p) && commit(p) {
			l.done = true
			return true
		}
	}
	return false
}

// FindFirstK searches for the first k primes with count workers and stops as
// soon as k primes have been counted.
//
// Candidates are handed out in ascending order by an atomic cursor and may be
// resolved out of order. A prime is counted only after every smaller
// candidate has been resolved, so the shared count is incremented with the
// first k primes in ascending order and never moves past k. Workers check
// the stop signal before taking the next candidate. The observer is called
// in commit order and must not block.
func FindFirstK(ctx context.Context, cfg Config, k uint64, count int) (SearchResult, error) {
	if count < 1 {
		return SearchResult{}, workers.ErrInvalidCount
	}
	if k == 0 {
		return SearchResult{}, ErrInvalidK
	}

	counted, err := shared.NewCounter(cfg.Policy, 0)
	if err != nil {
		return SearchResult{}, err
	}

	const first = 2

	var (
		cursor atomic.Uint64
		stop   atomic.Bool
		log    = cfg.logger()
		ledger = newCommitLog(first)
	)
	cursor.Store(first)

	commit := func(p uint64) bool {
		v, ok := counted.IncrementUntil(k)
		if !ok {
			return true
		}
		if cfg.Observer != nil {
			cfg.Observer(p, v)
		}
		return v == k
	}

	log.Debug("Search started", "k", k, "workers", count, "policy", cfg.Policy.String())
	start := time.Now()

	_, err = workers.Run(ctx, count, func(ctx context.Context, worker int) (struct{}, error) {
		for i := 0; ; i++ {
			if stop.Load() {
				return struct{}{}, nil
			}
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return struct{}{}, err
				}
			}

			c := cursor.Add(1) - 1
			if c == math.MaxUint64 {
				return struct{}{}, conv.ErrOverflow
			}

			prime := sieve.IsPrime(c)
			if ledger.resolve(c, prime, commit) {
				if stop.CompareAndSwap(false, true) {
					log.Debug("Search target reached", "worker", worker, "candidate", c)
				}
				return struct{}{}, nil
			}

			if prime {
				cfg.progress("Search progress", "worker", worker, "candidate", c, "counted", counted.Load())
			}
		}
	})
	if err != nil {
		return SearchResult{}, abortErr(ctx, err)
	}

	res := SearchResult{
		K:       k,
		Counted: counted.Load(),
		Scanned: cursor.Load() - first,
	}

	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	res.Primes = make([]uint64, 0, min(k, ledger.found.GetCardinality()))
	it := ledger.found.Iterator()
	for it.HasNext() && uint64(len(res.Primes)) < k {
		res.Primes = append(res.Primes, it.Next())
	}
	res.Kth = res.Primes[len(res.Primes)-1]

	log.Debug("Search done",
		"k", k,
		"kth", res.Kth,
		"scanned", res.Scanned,
		"recorded", ledger.found.GetCardinality(),
		"duration", time.Since(start),
	)

	return res, nil
}
