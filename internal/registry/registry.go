// Package registry implements the name -> aggregator maps (counters,
// timers, histograms) and their fast-path integer-index tables, pre-sized
// to the caller's expected counts.
package registry

// Registry owns the three aggregator kinds and their fast-path index
// tables. Registry insertion is safe to call concurrently, but the core
// design intends it to happen only on the worker goroutine; reads
// (lookups, snapshots for reporting) may come from any goroutine at any
// time.
type Registry struct {
	counters   *table[Counter]
	timers     *table[Timer]
	histograms *table[Histogram]
}

// New creates a Registry with its three tables pre-sized to the expected
// counts.
func New(expectedCounters, expectedTimers, expectedHistograms int) *Registry {
	return &Registry{
		counters:   newTable[Counter](expectedCounters),
		timers:     newTable[Timer](expectedTimers),
		histograms: newTable[Histogram](expectedHistograms),
	}
}

// CounterAdd resolves name to a Counter, lazily creating it with a zero
// value on first use, and atomically adds delta. Returns the aggregator's
// fast-path index.
func (r *Registry) CounterAdd(name string, delta uint64) int {
	c, idx, _ := r.counters.getOrCreate(name, func() *Counter { return &Counter{} })
	c.Add(delta)
	return idx
}

// CounterIndex returns the fast-path index for name, or -1 if unresolved.
func (r *Registry) CounterIndex(name string) int {
	return r.counters.lookup(name)
}

// CounterAddByIdx adds delta to the counter at idx. ok is false if idx is
// out of range.
func (r *Registry) CounterAddByIdx(idx int, delta uint64) (ok bool) {
	c, ok := r.counters.byIndex(idx)
	if !ok {
		return false
	}
	c.Add(delta)
	return true
}

// TimerCreate eagerly resolves name to a Timer, creating it if absent.
// Returns the fast-path index; repeat calls are idempotent (return the
// existing index), matching timer_create's lack of a documented
// duplicate-creation error in the producer API.
func (r *Registry) TimerCreate(name string) int {
	_, idx, _ := r.timers.getOrCreate(name, func() *Timer { return &Timer{} })
	return idx
}

// TimerIndex returns the fast-path index for name, or -1 if unresolved.
func (r *Registry) TimerIndex(name string) int {
	return r.timers.lookup(name)
}

// TimerStart resolves name to a Timer (lazily, matching the worker's
// lookup-or-create behavior for an unknown timer name on first use) and
// records now as its start point.
func (r *Registry) TimerStart(name string, now int64) int {
	t, idx, _ := r.timers.getOrCreate(name, func() *Timer { return &Timer{} })
	t.Start(now)
	return idx
}

// TimerStartByIdx starts the timer at idx. ok is false if idx is out of
// range.
func (r *Registry) TimerStartByIdx(idx int, now int64) (ok bool) {
	t, ok := r.timers.byIndex(idx)
	if !ok {
		return false
	}
	t.Start(now)
	return true
}

// TimerStop resolves name to a Timer; if absent, this is a no-op (matching
// spec.md: "If START is absent, STOP behaves as a no-op").
func (r *Registry) TimerStop(name string, now int64) int {
	idx := r.timers.lookup(name)
	if idx < 0 {
		return -1
	}
	t, _ := r.timers.byIndex(idx)
	t.Stop(now)
	return idx
}

// TimerStopByIdx stops the timer at idx. ok is false if idx is out of
// range.
func (r *Registry) TimerStopByIdx(idx int, now int64) (ok bool) {
	t, ok := r.timers.byIndex(idx)
	if !ok {
		return false
	}
	t.Stop(now)
	return true
}

// HistogramCreate creates a new Histogram over bins. Returns false if name
// already exists (ErrExists, in the caller's error taxonomy).
func (r *Registry) HistogramCreate(name string, bins []uint64) (idx int, created bool) {
	return r.histograms.createOnce(name, func() *Histogram { return NewHistogram(bins) })
}

// HistogramIndex returns the fast-path index for name, or -1 if
// unresolved. Per spec.md §4.6, histogram lookup only ever returns indices
// for already-created histograms — there is no lazy-create path here.
func (r *Registry) HistogramIndex(name string) int {
	return r.histograms.lookup(name)
}

// HistogramRecord records value into the histogram named name. Returns
// false if no such histogram exists (the worker drops the event).
func (r *Registry) HistogramRecord(name string, value uint64) bool {
	idx := r.histograms.lookup(name)
	if idx < 0 {
		return false
	}
	h, _ := r.histograms.byIndex(idx)
	h.Record(value)
	return true
}

// HistogramRecordByIdx records value into the histogram at idx. ok is
// false if idx is out of range.
func (r *Registry) HistogramRecordByIdx(idx int, value uint64) (ok bool) {
	h, ok := r.histograms.byIndex(idx)
	if !ok {
		return false
	}
	h.Record(value)
	return true
}

// CounterSnapshot returns all counter names and their current values, in
// fast-path index order.
func (r *Registry) CounterSnapshot() (names []string, values []uint64) {
	ns, items := r.counters.snapshot()
	values = make([]uint64, len(items))
	for i, c := range items {
		values[i] = c.Load()
	}
	return ns, values
}

// TimerSnapshot returns all timer names and their accumulated nanoseconds,
// in fast-path index order.
func (r *Registry) TimerSnapshot() (names []string, values []int64) {
	ns, items := r.timers.snapshot()
	values = make([]int64, len(items))
	for i, t := range items {
		values[i] = t.Load()
	}
	return ns, values
}

// HistogramSnapshot returns all histogram names, their sorted bin
// thresholds, and their per-bin counts, in fast-path index order.
func (r *Registry) HistogramSnapshot() (names []string, bins [][]uint64, counts [][]uint64) {
	ns, items := r.histograms.snapshot()
	bins = make([][]uint64, len(items))
	counts = make([][]uint64, len(items))
	for i, h := range items {
		bins[i] = h.Bins()
		counts[i] = h.Counts()
	}
	return ns, bins, counts
}
