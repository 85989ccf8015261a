package pool

import "testing"

func TestNewRejectsInvalidArguments(t *testing.T) {
	if _, err := New(0, 64); err != ErrInvalidArgument {
		t.Errorf("bufCount=0: got %v, want ErrInvalidArgument", err)
	}
	if _, err := New(4, 0); err != ErrInvalidArgument {
		t.Errorf("bufSize=0: got %v, want ErrInvalidArgument", err)
	}
	if _, err := New(4, maxBufSize+1); err != ErrInvalidArgument {
		t.Errorf("bufSize too large: got %v, want ErrInvalidArgument", err)
	}
}

func TestFreeCountAfterConstruction(t *testing.T) {
	// bufCount-1 must hold for every bufCount, not just powers of two: the
	// free-list ring is sized up to a power of two internally, so the cap
	// has to come from the population loop, not the ring's own ceiling.
	for _, bufCount := range []int{2, 4, 5, 7, 16, 100} {
		p, err := New(bufCount, 1024)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := p.FreeCount(), uint64(bufCount-1); got != want {
			t.Errorf("bufCount=%d: FreeCount() = %d, want %d", bufCount, got, want)
		}
		p.Destroy()
	}
}

func TestAcquireReturnsAlignedPointersInRegion(t *testing.T) {
	p, err := New(4, 1024)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	var acquired [][]byte
	for {
		buf, err := p.Acquire()
		if err != nil {
			break
		}
		acquired = append(acquired, buf)
	}

	if len(acquired) != 3 {
		t.Fatalf("acquired %d buffers, want %d", len(acquired), 3)
	}
	for _, buf := range acquired {
		idx, ok := p.slotIndex(buf)
		if !ok {
			t.Fatalf("acquired buffer not recognised as a pool slot")
		}
		if int(idx) >= p.BufCount() {
			t.Fatalf("slot index %d out of range", idx)
		}
	}

	if _, err := p.Acquire(); err != ErrAgain {
		t.Fatalf("Acquire on exhausted pool: got %v, want ErrAgain", err)
	}
}

func TestReleaseInvalidPointerIsNoOp(t *testing.T) {
	p, err := New(4, 1024)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	before := p.FreeCount()

	local := make([]byte, 16)
	p.Release(local)

	if got := p.FreeCount(); got != before {
		t.Fatalf("FreeCount() after invalid release = %d, want unchanged %d", got, before)
	}
}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	p, err := New(4, 1024)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	buf, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	before := p.FreeCount()
	p.Release(buf)
	if got := p.FreeCount(); got != before+1 {
		t.Fatalf("FreeCount() after release = %d, want %d", got, before+1)
	}
}
