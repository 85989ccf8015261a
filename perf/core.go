package perf

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/go-perfcore/perfcore/internal/batcher"
	"github.com/go-perfcore/perfcore/internal/pool"
	"github.com/go-perfcore/perfcore/internal/registry"
	"github.com/go-perfcore/perfcore/internal/ring"
	"github.com/go-perfcore/perfcore/internal/structlog"
)

// eventSlotSize is the pool's per-slot size: exactly enough to hold one
// event record, so a slot round-trips through the ring as a single
// unsafe.Pointer with no extra indirection.
const eventSlotSize = int(unsafe.Sizeof(event{}))

// core is the live instance assembled by Init. Exactly one may exist at a
// time, held behind the package-level atomic.Pointer handle so the public
// API stays name-based and global (per the documented external interface)
// while the implementation underneath is a plain struct, not ad hoc
// package-level state scattered across files.
type core struct {
	registry *registry.Registry
	r        *ring.Ring[unsafe.Pointer]
	pool     *pool.Pool
	batcher  *batcher.Batcher

	// producerMu serializes the pool-acquire + ring-enqueue critical section
	// across the arbitrary number of producer goroutines the public API
	// permits (spec.md §5: "multiple parallel producer threads of unknown
	// number"). internal/pool and internal/batcher are built on a strictly
	// SPSC ring (spec.md §9); this mutex is the chosen extension strategy
	// from §9's two options — a single serialized logical producer feeding
	// the SPSC pipeline, rather than upgrading the ring itself to an MPSC
	// discipline. It trades the "wait-free" property for "thread-safe,
	// briefly blocking" on the producer hot path, which is the documented
	// accepted cost of option (a) in spec.md §9.
	producerMu sync.Mutex

	// closed is set under producerMu by Shutdown once the worker has been
	// joined, immediately before the batcher and pool are torn down. Every
	// producer path checks it under the same mutex, so no post can touch a
	// destroyed batcher or pool even if the caller loaded the core handle
	// before Shutdown began.
	closed bool

	workerDone chan struct{}
}

var handle atomic.Pointer[core]

// Init assembles the ring, pool, batcher, and registry, and starts the
// background worker goroutine. expectedCounters/expectedTimers/
// expectedHistograms size the registry's maps; they are hints, not limits.
// Returns ErrAlreadyInitialised if called twice without an intervening
// Shutdown. Any failure during assembly unwinds everything already
// constructed and returns the original error.
func Init(expectedCounters, expectedTimers, expectedHistograms int, opts ...Option) error {
	if current() != nil {
		return ErrAlreadyInitialised
	}

	total := expectedCounters + expectedTimers + expectedHistograms
	cfg, err := resolveOptions(total, opts)
	if err != nil {
		return &initError{"options", err}
	}

	r, err := ring.New[unsafe.Pointer](cfg.ringCapacity)
	if err != nil {
		return &initError{"ring", err}
	}

	p, err := pool.NewWithHugePages(cfg.poolSlots, eventSlotSize, cfg.hugePages)
	if err != nil {
		return &initError{"pool", ErrMapFailed}
	}

	b, err := batcher.New(r, cfg.batchSize)
	if err != nil {
		p.Destroy()
		return &initError{"batcher", err}
	}

	c := &core{
		registry:   registry.New(expectedCounters, expectedTimers, expectedHistograms),
		r:          r,
		pool:       p,
		batcher:    b,
		workerDone: make(chan struct{}),
	}

	if !handle.CompareAndSwap(nil, c) {
		b.Destroy()
		p.Destroy()
		return ErrAlreadyInitialised
	}

	go c.runWorker()

	structlog.Get().Log(structlog.Entry{
		Level:    structlog.LevelInfo,
		Category: "perf",
		Message:  "initialised",
	})
	return nil
}

// current returns the active core, or nil if Init has not been called (or
// Shutdown has already run).
func current() *core {
	return handle.Load()
}

// postShutdownSentinel enqueues the Shutdown event that ends runWorker's
// loop, retrying with backoff if the pool is momentarily exhausted so a
// Shutdown call can never deadlock waiting on workerDone.
func (c *core) postShutdownSentinel() {
	backoff := flushBackoffInitial
	for {
		posted := func() bool {
			c.producerMu.Lock()
			defer c.producerMu.Unlock()

			if c.closed {
				return true
			}
			slot, err := c.pool.Acquire()
			if err != nil {
				return false
			}
			*(*event)(unsafe.Pointer(&slot[0])) = event{Kind: kindShutdown}
			if err := c.batcher.Enqueue(unsafe.Pointer(&slot[0])); err == nil {
				return true
			}
			c.pool.Release(slot)
			return false
		}()
		if posted {
			return
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > flushBackoffCap {
			backoff = flushBackoffCap
		}
	}
}

var shutdownMu sync.Mutex

// Shutdown stops the worker goroutine, optionally writes a final report to
// w, and releases every subsystem. It is idempotent: calling it when no
// core is active is a no-op that returns nil.
func Shutdown(w io.Writer) error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()

	c := current()
	if c == nil {
		return nil
	}

	c.postShutdownSentinel()
	<-c.workerDone

	var reportErr error
	if w != nil {
		reportErr = c.report(w)
	}

	// Fence off late producers before tearing anything down: a goroutine
	// that loaded the core handle before this Shutdown began may still be
	// waiting on producerMu to post.
	c.producerMu.Lock()
	c.closed = true
	c.producerMu.Unlock()

	c.batcher.Destroy()
	c.pool.Destroy()

	handle.Store(nil)

	structlog.Get().Log(structlog.Entry{
		Level:    structlog.LevelInfo,
		Category: "perf",
		Message:  "shut down",
	})
	return reportErr
}
