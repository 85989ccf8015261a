package perf

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForFlush is a small helper: the worker runs asynchronously, so tests
// that assert on registry state after posting events need to wait for the
// ring to drain before reading Report/registry snapshots.
func waitForFlush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, Flush(ctx))
}

func TestInitDoubleInitFails(t *testing.T) {
	require.NoError(t, Init(1, 1, 1))
	defer Shutdown(nil)

	require.ErrorIs(t, Init(1, 1, 1), ErrAlreadyInitialised)
}

func TestProducerBeforeInitIsSafe(t *testing.T) {
	require.Nil(t, current(), "expected no core active at start of test")

	CounterInc("ignored")
	TimerStart("ignored")
	TimerStop("ignored")
	HistogramRecord("ignored", 1)

	assert.ErrorIs(t, CounterCreate("x"), ErrNotInitialised)
	assert.ErrorIs(t, TimerCreate("x"), ErrNotInitialised)
	assert.ErrorIs(t, HistogramCreate("x", []uint64{1}), ErrNotInitialised)
	assert.ErrorIs(t, Flush(context.Background()), ErrNotInitialised)
	assert.ErrorIs(t, Report(&bytes.Buffer{}), ErrNotInitialised)
}

func TestBasicCounter(t *testing.T) {
	require.NoError(t, Init(4, 4, 4))
	defer Shutdown(nil)

	CounterInc("requests")
	CounterAdd("requests", 4)
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	assert.Contains(t, buf.String(), "requests: 5")
}

func TestHistogramBucketingAndOverflow(t *testing.T) {
	require.NoError(t, Init(0, 0, 4))
	defer Shutdown(nil)

	require.NoError(t, HistogramCreate("latency", []uint64{10, 50, 100}))
	HistogramRecord("latency", 5)
	HistogramRecord("latency", 40)
	HistogramRecord("latency", 1000) // overflow
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	out := buf.String()
	assert.Contains(t, out, "latency:")
	assert.Contains(t, out, "<= 10: 1")
	assert.Contains(t, out, "<= 100: 1", "overflow sample should land in the last bin")
}

func TestHistogramCreateDuplicateReturnsErrExists(t *testing.T) {
	require.NoError(t, Init(0, 0, 1))
	defer Shutdown(nil)

	require.NoError(t, HistogramCreate("dup", []uint64{1, 2}))
	require.ErrorIs(t, HistogramCreate("dup", []uint64{1, 2}), ErrExists)
}

func TestTimerStartStop(t *testing.T) {
	require.NoError(t, Init(0, 1, 0))
	defer Shutdown(nil)

	TimerStart("op")
	time.Sleep(time.Millisecond)
	TimerStop("op")
	waitForFlush(t)

	assert.GreaterOrEqual(t, TimerLookup("op"), 0, "expected timer to be resolvable")
}

func TestTimerCreateIsSynchronouslyVisible(t *testing.T) {
	require.NoError(t, Init(0, 1, 0))
	defer Shutdown(nil)

	require.NoError(t, TimerCreate("warmup"))
	// Unlike CounterCreate (visible only after the worker drains its
	// zero-delta event), TimerCreate resolves synchronously, so no Flush is
	// needed before the lookup succeeds.
	assert.GreaterOrEqual(t, TimerLookup("warmup"), 0)
	require.NoError(t, TimerCreate("warmup"), "repeat TimerCreate should be idempotent")
}

func TestFastPathIndexAPI(t *testing.T) {
	require.NoError(t, Init(4, 0, 0))
	defer Shutdown(nil)

	require.NoError(t, CounterCreate("hot"))
	waitForFlush(t)

	idx := CounterLookup("hot")
	require.GreaterOrEqual(t, idx, 0, "expected counter to resolve to a fast-path index")

	CounterIncByIdx(idx)
	CounterAddByIdx(idx, 9)
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	assert.Contains(t, buf.String(), "hot: 10")
}

func TestConcurrentCounterIncrements(t *testing.T) {
	// Generous pool/ring sizing: this drives enough concurrent throughput
	// that a minimally-sized pipeline would legitimately drop events under
	// the documented best-effort delivery guarantee. Sizing comfortably
	// above the expected burst keeps this test a check on atomic summation,
	// not on overflow behavior.
	require.NoError(t, Init(1, 0, 0, WithPoolSlots(4096), WithRingCapacity(8192), WithBatchSize(256)))
	defer Shutdown(nil)

	const goroutines = 20
	const perGoroutine = 10000
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				CounterInc("hits")
			}
		}()
	}
	wg.Wait()
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	assert.Contains(t, buf.String(), "hits: 200000",
		"events may have been dropped under pool pressure")
}

func TestShutdownIsIdempotent(t *testing.T) {
	require.NoError(t, Init(1, 1, 1))
	require.NoError(t, Shutdown(nil))
	require.NoError(t, Shutdown(nil))
}

func TestShutdownWritesReport(t *testing.T) {
	require.NoError(t, Init(1, 0, 0))

	CounterInc("final")
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Shutdown(&buf))
	assert.Contains(t, buf.String(), "final: 1")
}

func TestInitAfterShutdownSucceeds(t *testing.T) {
	require.NoError(t, Init(1, 1, 1))
	require.NoError(t, Shutdown(nil))

	require.NoError(t, Init(1, 1, 1))
	defer Shutdown(nil)

	CounterInc("fresh")
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	assert.Contains(t, buf.String(), "fresh: 1")
}

func TestReportFormat(t *testing.T) {
	require.NoError(t, Init(2, 2, 2))
	defer Shutdown(nil)

	require.NoError(t, CounterCreate("ct"))
	CounterInc("ct")
	CounterAdd("ct", 3)
	require.NoError(t, HistogramCreate("hg", []uint64{5, 15, 30}))
	HistogramRecord("hg", 3)
	HistogramRecord("hg", 10)
	HistogramRecord("hg", 20)
	waitForFlush(t)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf))
	out := buf.String()
	assert.Contains(t, out, "=== Performance Report ===")
	assert.Contains(t, out, "-- Counters --")
	assert.Contains(t, out, "-- Timers (ns) --")
	assert.Contains(t, out, "-- Histograms --")
	assert.Contains(t, out, "ct: 4")
	assert.Contains(t, out, "<= 5: 1")
	assert.Contains(t, out, "<= 15: 1")
	assert.Contains(t, out, "<= 30: 1")
}
