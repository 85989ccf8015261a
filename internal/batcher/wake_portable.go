//go:build !linux

package batcher

// chanWake is the portable wake primitive for platforms without a wired
// eventfd binding (Darwin/Windows in this module's dependency set — a real
// build would reach for kqueue EVFILT_USER or an IOCP completion key, as
// the teacher's wakeup_darwin.go/wakeup_windows.go do). A buffered channel
// sized to the ring's maximum occupancy (Cap()-1) acts as a bounded
// counting semaphore: each Signal adds one pending wake while the buffer
// has room, and Wait decrements by exactly one per call. Because one Next
// can drain several items while consuming a single wake, pending wakes can
// outnumber ring items and the buffer can fill; Signal then drops the
// send. At that point Cap()-1 wakes are already pending, and each of them
// lets Next drain at least one available item, which covers everything a
// ring of that capacity can hold.
type chanWake struct {
	c chan struct{}
}

func newWakePrimitive(capacity uint64) (wakePrimitive, error) {
	if capacity == 0 {
		capacity = 1
	}
	return &chanWake{c: make(chan struct{}, capacity)}, nil
}

func (w *chanWake) Signal() error {
	select {
	case w.c <- struct{}{}:
	default:
		// Buffer full: Cap()-1 wakes are already pending (see chanWake),
		// so this send is dropped.
	}
	return nil
}

func (w *chanWake) Wait() error {
	_, ok := <-w.c
	if !ok {
		return errClosed
	}
	return nil
}

func (w *chanWake) Close() error {
	close(w.c)
	return nil
}
