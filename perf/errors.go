// Package perf is a low-overhead, in-process performance instrumentation
// facility: named counters, stopwatch timers, and bucketed histograms.
// Producer goroutines record measurements on a wait-free hot path; a single
// background worker goroutine aggregates them into state a synchronous
// Report call can print at any time.
package perf

import "errors"

// Sentinel errors returned across the public API. Internal packages define
// their own sentinels of the same shape; perf wraps them so callers only
// need to match against this taxonomy with errors.Is.
var (
	ErrNotInitialised     = errors.New("perf: not initialised")
	ErrAlreadyInitialised = errors.New("perf: already initialised")
	ErrInvalidArgument    = errors.New("perf: invalid argument")
	ErrNoSpace            = errors.New("perf: no space")
	ErrAgain              = errors.New("perf: try again")
	ErrMapFailed          = errors.New("perf: failed to map memory region")
	ErrNotFound           = errors.New("perf: not found")
	ErrExists             = errors.New("perf: already exists")
	ErrOutOfMemory        = errors.New("perf: out of memory")
	ErrIO                 = errors.New("perf: i/o error")
)

// initError wraps a failure encountered while Init was assembling the core,
// so callers can see both the taxonomy sentinel (via Unwrap) and which
// subsystem failed.
type initError struct {
	component string
	cause     error
}

func (e *initError) Error() string {
	return "perf: init: " + e.component + ": " + e.cause.Error()
}

func (e *initError) Unwrap() error {
	return e.cause
}
