package perf

import (
	"unsafe"

	"github.com/go-perfcore/perfcore/internal/structlog"
)

// post acquires a slot, fills it with ev, and enqueues it. Pool exhaustion
// and ring-full/wake failures both result in the event being silently
// dropped, matching the documented best-effort delivery guarantee. The
// critical section is brief (one pool dequeue, one memcpy-sized store, one
// ring enqueue, one wake signal) and serializes concurrent producers over
// the SPSC pool/ring per spec.md §9 (see core.producerMu).
func (c *core) post(ev event) {
	c.producerMu.Lock()
	defer c.producerMu.Unlock()

	if c.closed {
		return
	}
	slot, err := c.pool.Acquire()
	if err != nil {
		structlog.Get().Log(structlog.Entry{
			Level:    structlog.LevelWarn,
			Category: "pool",
			Metric:   ev.Name,
			Message:  "dropped event: pool exhausted",
		})
		return
	}
	*(*event)(unsafe.Pointer(&slot[0])) = ev
	if err := c.batcher.Enqueue(unsafe.Pointer(&slot[0])); err != nil {
		c.pool.Release(slot)
		structlog.Get().Log(structlog.Entry{
			Level:    structlog.LevelWarn,
			Category: "batcher",
			Metric:   ev.Name,
			Message:  "dropped event: enqueue failed",
			Err:      err,
		})
	}
}

// CounterCreate posts a zero-delta CounterAdd for name, so the worker
// registers the counter with a zero value and it appears in Report even
// before its first increment. The counter becomes visible to CounterLookup
// and Report only once the worker has dispatched that event. Returns
// ErrNotInitialised if called before Init.
func CounterCreate(name string) error {
	c := current()
	if c == nil {
		return ErrNotInitialised
	}
	c.post(event{Kind: kindCounterAdd, Name: name, Arg: 0})
	return nil
}

// CounterInc increments the named counter by 1, lazily creating it on first
// use. A no-op before Init.
func CounterInc(name string) {
	CounterAdd(name, 1)
}

// CounterAdd adds delta to the named counter, lazily creating it on first
// use. A no-op before Init.
func CounterAdd(name string, delta uint64) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindCounterAdd, Name: name, Arg: delta})
}

// TimerCreate eagerly registers a timer under name, synchronously, so it is
// visible to TimerLookup and Report immediately rather than only after the
// worker drains an event — unlike CounterCreate, which posts a zero-delta
// event and is only observable post-flush (see spec.md §9's documented
// divergence between the two). Returns ErrNotInitialised if called before
// Init. Repeat calls are idempotent.
func TimerCreate(name string) error {
	c := current()
	if c == nil {
		return ErrNotInitialised
	}
	c.registry.TimerCreate(name)
	return nil
}

// TimerStart posts a start event for the named timer, lazily creating the
// timer on first use. The monotonic clock is read by the worker when it
// dispatches the event, so the measured interval runs between the worker
// observing the start and observing the matching stop. A no-op before Init.
func TimerStart(name string) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindTimerStart, Name: name})
}

// TimerStop posts a stop event for the named timer; the worker reads the
// clock at dispatch, computes the delta since the recorded start, and adds
// it to the accumulator. A no-op before Init, and a no-op if the timer was
// never started.
func TimerStop(name string) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindTimerStop, Name: name})
}

// HistogramCreate registers a histogram under name with the given sorted
// bin thresholds. Returns ErrNotInitialised before Init, ErrExists if name
// is already registered. bins are copied; the last bin is always the
// overflow bin.
func HistogramCreate(name string, bins []uint64) error {
	c := current()
	if c == nil {
		return ErrNotInitialised
	}
	if _, created := c.registry.HistogramCreate(name, bins); !created {
		return ErrExists
	}
	return nil
}

// HistogramRecord records value into the named histogram. A no-op before
// Init, and a no-op if no such histogram was ever created.
func HistogramRecord(name string, value uint64) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindHistogramRecord, Name: name, Arg: value})
}
