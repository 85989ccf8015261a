package perf

import (
	"unsafe"

	"github.com/go-perfcore/perfcore/internal/structlog"
)

// runWorker is the single background consumer goroutine started by Init. It
// blocks on the batcher, dispatches each drained event into the registry,
// and releases the event's slot back to the pool. It exits after observing
// a Shutdown event.
func (c *core) runWorker() {
	defer close(c.workerDone)

	buf := make([]unsafe.Pointer, c.batcher.BatchSize())
	for {
		n, err := c.batcher.Next(buf)
		if err != nil {
			// The wake primitive was closed out from under us: only
			// Shutdown does that, and it always enqueues a Shutdown event
			// first, so draining below will normally have already
			// returned. Treat this as an unconditional exit signal.
			return
		}
		for i := 0; i < n; i++ {
			ptr := buf[i]
			ev := *(*event)(ptr)
			stop := c.dispatch(ev)
			slot := unsafe.Slice((*byte)(ptr), c.pool.BufSize())
			c.pool.Release(slot)
			if stop {
				return
			}
		}
	}
}

// dispatch applies one event to the registry. Returns true if ev was the
// Shutdown sentinel, signalling the worker to exit after this event.
func (c *core) dispatch(ev event) (shutdown bool) {
	switch ev.Kind {
	case kindCounterAdd:
		if ev.byIdx {
			c.registry.CounterAddByIdx(ev.idx, ev.Arg)
		} else {
			c.registry.CounterAdd(ev.Name, ev.Arg)
		}
	case kindTimerStart:
		// The clock is read here, at dispatch, not at the producer call
		// site: a timer measures the interval between the worker observing
		// the start event and the worker observing the stop event. Arg is
		// unused for timer kinds.
		now := monotonicNow()
		if ev.byIdx {
			c.registry.TimerStartByIdx(ev.idx, now)
		} else {
			c.registry.TimerStart(ev.Name, now)
		}
	case kindTimerStop:
		now := monotonicNow()
		if ev.byIdx {
			c.registry.TimerStopByIdx(ev.idx, now)
		} else {
			c.registry.TimerStop(ev.Name, now)
		}
	case kindHistogramRecord:
		var ok bool
		if ev.byIdx {
			ok = c.registry.HistogramRecordByIdx(ev.idx, ev.Arg)
		} else {
			ok = c.registry.HistogramRecord(ev.Name, ev.Arg)
		}
		if !ok {
			structlog.Get().Log(structlog.Entry{
				Level:    structlog.LevelWarn,
				Category: "registry",
				Metric:   ev.Name,
				Message:  "dropped sample: no such histogram",
			})
		}
	case kindShutdown:
		return true
	default:
		structlog.Get().Log(structlog.Entry{
			Level:    structlog.LevelWarn,
			Category: "worker",
			Message:  "dropped event: unknown kind",
		})
	}
	return false
}
