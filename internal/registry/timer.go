package registry

import "sync/atomic"

// Timer accumulates elapsed nanoseconds between Start/Stop pairs.
//
// Start is deliberately not synchronised against concurrent Start calls on
// the same Timer: the last writer wins, matching the documented limitation
// that concurrent overlapping Start/Stop on one timer from different
// producers is a usage error the core does not guard against (see
// DESIGN.md's "Open Question decisions"). Only the accumulator itself is
// atomic.
type Timer struct {
	startNanos int64
	started    atomic.Bool
	accum      atomic.Int64
}

// Start records now (a monotonic clock reading in nanoseconds) as the
// timer's start point.
func (t *Timer) Start(now int64) {
	t.startNanos = now
	t.started.Store(true)
}

// Stop computes now-start and atomically adds it to the accumulator. If no
// Start has been recorded, Stop is a no-op.
func (t *Timer) Stop(now int64) {
	if !t.started.Load() {
		return
	}
	delta := now - t.startNanos
	if delta < 0 {
		delta = 0
	}
	t.accum.Add(delta)
}

// Load returns the accumulated nanoseconds.
func (t *Timer) Load() int64 {
	return t.accum.Load()
}
