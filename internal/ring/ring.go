// Package ring implements the bounded single-producer/single-consumer
// queue that underlies the zero-copy buffer pool's free list and the event
// batcher's event queue. It is a Lamport ring buffer with cache-line-padded
// head/tail counters and cached opposite-side views: the producer caches
// its last-seen consumer position (and vice versa) to cut cross-core
// cache-line traffic on the hot path.
package ring

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidCapacity is returned by New when capacity is zero or not a
// power of two.
var ErrInvalidCapacity = errors.New("ring: capacity must be a power of two and greater than zero")

// sizeOfCacheLine is the assumed CPU cache line size. 128 satisfies the
// largest common alignment requirement (Apple Silicon/ARM64 as well as
// x86-64), matching the padding convention used throughout this module.
const sizeOfCacheLine = 128

// Ring is a bounded SPSC queue holding values of type E — typically
// unsafe.Pointer (the event batcher's event queue) or a small integer slot
// index (the zero-copy pool's free list; see package pool). Exactly one
// goroutine may call Enqueue and exactly one goroutine may call
// Dequeue/Peek/PeekAt/Advance; mixing producers or consumers requires
// external serialization (package perf serializes its producers behind
// core.producerMu before they reach the event ring).
type Ring[E any] struct {
	_ [sizeOfCacheLine]byte

	head       atomic.Uint64 // consumer-owned, advanced by Dequeue/Advance
	cachedTail uint64        // consumer's cached view of tail; avoids an acquire-load when possible

	_ [sizeOfCacheLine - 16]byte

	tail       atomic.Uint64 // producer-owned, advanced by Enqueue
	cachedHead uint64        // producer's cached view of head

	_ [sizeOfCacheLine - 16]byte

	mask  uint64
	slots []E
}

// New creates a Ring with the given power-of-two capacity. One slot is
// reserved to disambiguate empty from full, so at most capacity-1 items can
// be enqueued concurrently.
func New[E any](capacity uint64) (*Ring[E], error) {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, ErrInvalidCapacity
	}
	return &Ring[E]{
		mask:  capacity - 1,
		slots: make([]E, capacity),
	}, nil
}

// Cap returns the ring's slot count (including the one reserved slot).
func (r *Ring[E]) Cap() uint64 {
	return r.mask + 1
}

// Enqueue publishes item to the ring. It returns false if the ring is full
// (occupancy is already capacity-1).
//
// Must be called from a single producer goroutine only.
func (r *Ring[E]) Enqueue(item E) bool {
	tail := r.tail.Load()
	if tail-r.cachedHead >= r.mask {
		r.cachedHead = r.head.Load()
		if tail-r.cachedHead >= r.mask {
			return false
		}
	}
	r.slots[tail&r.mask] = item
	r.tail.Store(tail + 1) // release: publishes the slot write above
	return true
}

// Dequeue removes and returns the oldest item. The second return value is
// false if the ring is empty.
//
// Must be called from a single consumer goroutine only.
func (r *Ring[E]) Dequeue() (E, bool) {
	var zero E
	head := r.head.Load()
	if head >= r.cachedTail {
		r.cachedTail = r.tail.Load() // acquire: pairs with Enqueue's release
		if head >= r.cachedTail {
			return zero, false
		}
	}
	item := r.slots[head&r.mask]
	r.slots[head&r.mask] = zero
	r.head.Store(head + 1)
	return item, true
}

// Peek returns the oldest item without removing it.
func (r *Ring[E]) Peek() (E, bool) {
	return r.PeekAt(0)
}

// PeekAt returns the item at offset slots past the current head without
// removing it. Returns false if offset >= occupancy.
func (r *Ring[E]) PeekAt(offset uint64) (E, bool) {
	var zero E
	head := r.head.Load()
	tail := r.tail.Load()
	if offset >= tail-head {
		return zero, false
	}
	return r.slots[(head+offset)&r.mask], true
}

// Advance skips the next k items without copying them out, as a bulk
// consumer-side dequeue. k is clamped to the current occupancy.
func (r *Ring[E]) Advance(k uint64) {
	var zero E
	head := r.head.Load()
	tail := r.tail.Load()
	if k > tail-head {
		k = tail - head
	}
	for i := uint64(0); i < k; i++ {
		r.slots[(head+i)&r.mask] = zero
	}
	r.head.Store(head + k)
}

// Count returns the observable occupancy. The value may be stale by the
// time the caller inspects it, but is monotonically consistent with the
// acquire/release pairing used by Enqueue/Dequeue.
func (r *Ring[E]) Count() uint64 {
	tail := r.tail.Load()
	head := r.head.Load()
	return tail - head
}
