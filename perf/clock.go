package perf

import "time"

// processEpoch anchors monotonicNow's readings. time.Since subtracts the
// monotonic component embedded in a time.Time created by time.Now(), so
// readings derived from it are immune to wall-clock adjustments — exactly
// what a stopwatch timer needs, without pulling in a syscall wrapper for a
// single duration read.
var processEpoch = time.Now()

// monotonicNow returns nanoseconds elapsed since package initialisation.
func monotonicNow() int64 {
	return int64(time.Since(processEpoch))
}
