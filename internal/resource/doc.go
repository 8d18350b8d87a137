// Package resource implements the resource controller for sieve runs.
//
// The controller manages two resources:
//
//   - Memory: Track and limit segment buffer memory (non-blocking, fail-fast)
//   - Progress: Rate-limit progress events emitted from worker hot loops
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic
// counter for usage tracking. AcquireMemory is non-blocking and returns
// immediately with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(bufferBytes); err != nil {
//	    // ErrMemoryLimitExceeded - abort the run before any work starts
//	}
//	defer rc.ReleaseMemory(bufferBytes)
//
// # Progress Throttling
//
// A token bucket (golang.org/x/time/rate) bounds progress logging so that a
// worker checking after every segment never floods the log:
//
//	if rc.AllowProgress() {
//	    logger.Debug("segment done", "worker", id, "lo", seg.Lo)
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
