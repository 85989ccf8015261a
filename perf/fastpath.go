package perf

// CounterLookup resolves name to its fast-path index, or -1 if no counter
// by that name has been created yet. The index is stable until Shutdown.
func CounterLookup(name string) int {
	c := current()
	if c == nil {
		return -1
	}
	return c.registry.CounterIndex(name)
}

// TimerLookup resolves name to its fast-path index, or -1 if no timer by
// that name has been created yet.
func TimerLookup(name string) int {
	c := current()
	if c == nil {
		return -1
	}
	return c.registry.TimerIndex(name)
}

// HistogramLookup resolves name to its fast-path index, or -1 if no
// histogram by that name has been created yet. Unlike counters and timers,
// a histogram must be created explicitly via HistogramCreate before it can
// be looked up.
func HistogramLookup(name string) int {
	c := current()
	if c == nil {
		return -1
	}
	return c.registry.HistogramIndex(name)
}

// CounterIncByIdx increments the counter at idx by 1, skipping name
// hashing. A no-op before Init or if idx is out of range.
func CounterIncByIdx(idx int) {
	CounterAddByIdx(idx, 1)
}

// CounterAddByIdx adds delta to the counter at idx, skipping name hashing.
// A no-op before Init or if idx is out of range.
func CounterAddByIdx(idx int, delta uint64) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindCounterAdd, Arg: delta, idx: idx, byIdx: true})
}

// TimerStartByIdx starts the timer at idx, skipping name hashing. The clock
// is read by the worker at dispatch, as with TimerStart. A no-op before
// Init or if idx is out of range.
func TimerStartByIdx(idx int) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindTimerStart, idx: idx, byIdx: true})
}

// TimerStopByIdx stops the timer at idx, skipping name hashing. A no-op
// before Init or if idx is out of range.
func TimerStopByIdx(idx int) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindTimerStop, idx: idx, byIdx: true})
}

// HistogramRecordByIdx records value into the histogram at idx, skipping
// name hashing. A no-op before Init or if idx is out of range.
func HistogramRecordByIdx(idx int, value uint64) {
	c := current()
	if c == nil {
		return
	}
	c.post(event{Kind: kindHistogramRecord, Arg: value, idx: idx, byIdx: true})
}
