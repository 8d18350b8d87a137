// Package segment implements range partitioning and per-segment composite
// marking for the segmented sieve.
//
// A Plan divides [width, limit) into contiguous segments of equal width (the
// last one clipped to limit). Together with the base range [0, width) the
// segments cover [0, limit) exactly once. Worker i of n processes segments
// i, i+n, i+2n, ... so assignment is static and collision-free.
//
// A Sieve owns one segment buffer and is used by exactly one worker.
package segment
