package batcher

// wakePrimitive is a cross-goroutine counting wake-up signal: Signal adds
// one pending wake, and Wait blocks until at least one wake is pending and
// then consumes exactly one. It is
// the Go-side analogue of the C source's semaphore-mode eventfd, built
// per-platform exactly as the teacher's wakeup_linux.go/wakeup_darwin.go/
// wakeup_windows.go files are: one file per platform providing the same
// create/signal/wait/close shape.
type wakePrimitive interface {
	Signal() error
	Wait() error
	Close() error
}
