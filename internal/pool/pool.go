// Package pool implements the zero-copy event-record buffer pool: a single
// mapped region sliced into fixed-size slots, handed out and reclaimed
// through a free list built on package ring.
package pool

import (
	"errors"
	"sync"

	"github.com/go-perfcore/perfcore/internal/ring"
)

const (
	// maxBufSize is the implementation cap on a single slot's size, matching
	// the huge-page size used to back the region.
	maxBufSize = 2 << 20 // 2 MiB

	hugePageSize = 2 << 20
)

var (
	// ErrInvalidArgument is returned for a zero buf count/size or a size
	// exceeding maxBufSize.
	ErrInvalidArgument = errors.New("pool: invalid buf_count or buf_size")
	// ErrMapFailed is returned when both the huge-page and fallback mappings fail.
	ErrMapFailed = errors.New("pool: failed to map region")
	// ErrAgain is returned by Acquire when the free list is empty.
	ErrAgain = errors.New("pool: no free buffers available")
)

// Pool hands out fixed-size buffer slots from a single contiguous region.
// The free list underneath is a strict SPSC package ring, so Acquire and
// Release are each serialized behind an internal mutex: any number of
// producer goroutines may call Acquire, and Release may be called from both
// producer goroutines (handing back a slot whose enqueue failed) and the
// worker goroutine (after normal dispatch), matching the performance core's
// actual multi-producer topology (see perf's core.producerMu for the
// analogous serialization applied to the event queue).
type Pool struct {
	region   []byte
	bufSize  int
	bufCount int
	hugePage bool

	// mu serializes Acquire/Release against the free-list ring, whose
	// Enqueue/Dequeue are each only safe for a single caller at a time
	// (package ring is strict SPSC). In the performance core's actual
	// topology, Acquire is called from many producer goroutines and Release
	// from both the single worker goroutine (after normal dispatch) and
	// producer goroutines (on a failed enqueue, to hand the slot back) — two
	// distinct call sites writing the same ring side, which the ring itself
	// cannot arbitrate. This mutex is the pool's own answer to that, so Pool
	// is safe under concurrent use without relying on an external lock.
	mu sync.Mutex

	free *ring.Ring[uint32]
}

// New creates a Pool of bufCount slots, each bufSize bytes, preferring a
// huge-page-backed mapping. bufCount and bufSize must both be positive and
// bufSize must not exceed the 2 MiB cap. The region is rounded up to a 2 MiB
// boundary.
func New(bufCount, bufSize int) (*Pool, error) {
	return NewWithHugePages(bufCount, bufSize, true)
}

// NewWithHugePages is New with explicit control over whether a huge-page
// mapping is attempted; passing false skips straight to the ordinary
// anonymous mapping (see perf.WithHugePages).
func NewWithHugePages(bufCount, bufSize int, hugePages bool) (*Pool, error) {
	if bufCount <= 0 || bufSize <= 0 || bufSize > maxBufSize {
		return nil, ErrInvalidArgument
	}

	regionSize := roundUpToHugePage(bufCount * bufSize)

	region, hugePage, err := mapRegion(regionSize, hugePages)
	if err != nil {
		return nil, ErrMapFailed
	}

	freeCap := nextPow2(uint64(bufCount))
	free, err := ring.New[uint32](freeCap)
	if err != nil {
		unmapRegion(region)
		return nil, err
	}

	p := &Pool{
		region:   region,
		bufSize:  bufSize,
		bufCount: bufCount,
		hugePage: hugePage,
		free:     free,
	}
	// At most bufCount-1 buffers are ever in circulation: the free list
	// inherits the ring's reserved-slot discipline, so the last slot index
	// is deliberately never added. An accepted capacity loss, not a bug to
	// work around — FreeCount() == bufCount-1 right after construction for
	// every bufCount, power of two or not.
	for i := 0; i < bufCount-1; i++ {
		free.Enqueue(uint32(i))
	}
	return p, nil
}

// Acquire removes a slot index from the free list and returns a pointer to
// its backing bytes. Returns ErrAgain if no slots are free.
func (p *Pool) Acquire() ([]byte, error) {
	p.mu.Lock()
	idx, ok := p.free.Dequeue()
	p.mu.Unlock()
	if !ok {
		return nil, ErrAgain
	}
	start := int(idx) * p.bufSize
	return p.region[start : start+p.bufSize : start+p.bufSize], nil
}

// Release returns a previously acquired slot to the free list. A buf that
// does not point inside the region, or is not slot-aligned, is silently
// ignored — a defensive no-op, matching the pool's contract that Release
// never panics on caller misuse.
func (p *Pool) Release(buf []byte) {
	idx, ok := p.slotIndex(buf)
	if !ok {
		return
	}
	p.mu.Lock()
	p.free.Enqueue(idx)
	p.mu.Unlock()
}

// slotIndex validates that buf is exactly one of the pool's slots and
// returns its index.
func (p *Pool) slotIndex(buf []byte) (uint32, bool) {
	if len(buf) == 0 || len(p.region) == 0 {
		return 0, false
	}
	base := &p.region[0]
	target := &buf[0]
	offset := ptrOffset(base, target)
	if offset < 0 || offset >= int64(p.bufCount)*int64(p.bufSize) {
		return 0, false
	}
	if offset%int64(p.bufSize) != 0 {
		return 0, false
	}
	return uint32(offset / int64(p.bufSize)), true
}

// FreeCount returns the free list's current occupancy.
func (p *Pool) FreeCount() uint64 {
	return p.free.Count()
}

// BufSize returns the configured slot size.
func (p *Pool) BufSize() int {
	return p.bufSize
}

// BufCount returns the configured slot count.
func (p *Pool) BufCount() int {
	return p.bufCount
}

// HugePage reports whether the region is backed by huge pages.
func (p *Pool) HugePage() bool {
	return p.hugePage
}

// Destroy unmaps the region. The free list is discarded with it.
func (p *Pool) Destroy() error {
	return unmapRegion(p.region)
}

func roundUpToHugePage(n int) int {
	if n <= 0 {
		return hugePageSize
	}
	rem := n % hugePageSize
	if rem == 0 {
		return n
	}
	return n + (hugePageSize - rem)
}

func nextPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
