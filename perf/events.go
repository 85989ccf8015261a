package perf

// Kind tags the operation an event record carries. The type is exported
// with a String method for diagnostics; its constants are not, and
// producers never construct a Kind directly.
type Kind uint8

const (
	kindCounterAdd Kind = iota
	kindTimerStart
	kindTimerStop
	kindHistogramRecord
	kindShutdown
)

func (k Kind) String() string {
	switch k {
	case kindCounterAdd:
		return "CounterAdd"
	case kindTimerStart:
		return "TimerStart"
	case kindTimerStop:
		return "TimerStop"
	case kindHistogramRecord:
		return "HistogramRecord"
	case kindShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// event is the tagged-union record passed from producers to the worker
// through the batcher. Name is copied by value (a Go string header), unlike
// the borrowed-pointer shape this design traces back to: strings are
// immutable, so copying one across the ring carries no lifetime hazard.
// Arg holds the counter delta or histogram sample; it is unused for timer
// events, whose clock readings happen worker-side at dispatch. Allocated
// only from the pool's slots, never individually heap-allocated.
//
// byIdx selects between the two resolution paths the worker dispatches on:
// when true, idx addresses the aggregator directly (the fast-path API);
// when false, Name is resolved (and lazily created, where the operation
// allows it) through the registry's name tables.
type event struct {
	Kind  Kind
	Name  string
	Arg   uint64
	idx   int
	byIdx bool
}
