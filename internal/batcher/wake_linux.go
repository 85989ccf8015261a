//go:build linux

package batcher

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// eventfdWake is a wake primitive backed by a Linux eventfd opened in
// EFD_SEMAPHORE mode: Signal adds 1 to the kernel-side 64-bit counter (a
// non-blocking write), and each Wait blocks until the counter is non-zero
// and then decrements it by exactly 1 — matching spec.md §4.3's "semaphore
// counter that increments on signal, decrements on wait" contract. Without
// EFD_SEMAPHORE, a plain eventfd Read drains and resets the whole
// accumulated count in one call, which would desynchronize the wake count
// from the number of outstanding Next() drains needed to empty a backlog
// larger than one batch. This mirrors eventloop/wakeup_linux.go's
// createWakeFd/drainWakeUpPipe pair, adapted from a one-shot drain helper
// into a blocking, per-signal primitive.
type eventfdWake struct {
	fd int
}

// newWakePrimitive's capacity argument is unused on Linux: the kernel-side
// eventfd counter is a 64-bit value (practically unbounded for this use),
// unlike the portable fallback's fixed-size channel buffer.
func newWakePrimitive(capacity uint64) (wakePrimitive, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_SEMAPHORE)
	if err != nil {
		return nil, err
	}
	return &eventfdWake{fd: fd}, nil
}

func (w *eventfdWake) Signal() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(w.fd, buf[:])
	return err
}

func (w *eventfdWake) Wait() error {
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

func (w *eventfdWake) Close() error {
	return unix.Close(w.fd)
}
