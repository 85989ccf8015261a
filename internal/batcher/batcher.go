// Package batcher combines the SPSC ring buffer with a cross-goroutine wake
// primitive into a blocking, batched consumer: producers enqueue and
// signal, the single consumer goroutine blocks on the wake primitive and
// drains up to a configured batch size per wake.
package batcher

import (
	"errors"
	"unsafe"

	"github.com/go-perfcore/perfcore/internal/ring"
)

var (
	// ErrInvalidArgument is returned when batchSize is not positive.
	ErrInvalidArgument = errors.New("batcher: batch size must be positive")
	// ErrAgain is returned by Enqueue when the underlying ring is full.
	ErrAgain = errors.New("batcher: ring is full")
	// ErrIO is returned by Enqueue when the wake signal failed after a
	// successful ring enqueue; the event is considered lost.
	ErrIO = errors.New("batcher: failed to signal consumer")

	errClosed = errors.New("batcher: wake primitive closed")
)

// Batcher is the event queue discipline sitting between perf core producers
// and its single worker goroutine.
type Batcher struct {
	ring      *ring.Ring[unsafe.Pointer]
	batchSize int
	wake      wakePrimitive
}

// New creates a Batcher over ring with the given per-wake batch size limit.
// batchSize must be positive.
func New(r *ring.Ring[unsafe.Pointer], batchSize int) (*Batcher, error) {
	if batchSize <= 0 {
		return nil, ErrInvalidArgument
	}
	// Bounded wake primitives are sized to the ring's maximum occupancy:
	// the ring can hold at most Cap()-1 items concurrently (one slot
	// reserved, package ring §4.1), so Cap()-1 pending wakes are enough to
	// drain it.
	wake, err := newWakePrimitive(r.Cap() - 1)
	if err != nil {
		return nil, err
	}
	return &Batcher{ring: r, batchSize: batchSize, wake: wake}, nil
}

// Enqueue attempts to publish item on the ring and signal the consumer.
// Returns ErrAgain if the ring is full, ErrIO if the ring accepted the item
// but the wake signal itself failed (the event is then considered lost —
// the worker may never observe the ring has new content).
func (b *Batcher) Enqueue(item unsafe.Pointer) error {
	if !b.ring.Enqueue(item) {
		return ErrAgain
	}
	if err := b.wake.Signal(); err != nil {
		return ErrIO
	}
	return nil
}

// Next blocks until the wake primitive is signalled, then dequeues up to
// len(out) items (further capped at the configured batch size) and returns
// the count drained. Next is the only call on Batcher that suspends the
// calling goroutine.
func (b *Batcher) Next(out []unsafe.Pointer) (int, error) {
	if err := b.wake.Wait(); err != nil {
		return 0, err
	}
	limit := len(out)
	if limit > b.batchSize {
		limit = b.batchSize
	}
	n := 0
	for n < limit {
		item, ok := b.ring.Dequeue()
		if !ok {
			break
		}
		out[n] = item
		n++
	}
	return n, nil
}

// IsEmpty reports whether the underlying ring currently holds no items.
func (b *Batcher) IsEmpty() bool {
	return b.ring.Count() == 0
}

// BatchSize returns the configured maximum drain size per Next call.
func (b *Batcher) BatchSize() int {
	return b.batchSize
}

// Destroy closes the wake primitive. The ring is owned externally and is
// left untouched.
func (b *Batcher) Destroy() error {
	return b.wake.Close()
}
