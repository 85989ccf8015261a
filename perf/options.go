package perf

// config holds the resolved configuration for Init.
type config struct {
	batchSize    int
	poolSlots    int
	hugePages    bool
	ringCapacity uint64
}

// Option configures Init.
type Option interface {
	applyConfig(*config) error
}

type optionFunc struct {
	apply func(*config) error
}

func (o *optionFunc) applyConfig(cfg *config) error {
	return o.apply(cfg)
}

// WithBatchSize overrides the number of events the worker drains per wake.
// The default is 64.
func WithBatchSize(n int) Option {
	return &optionFunc{func(cfg *config) error {
		if n <= 0 {
			return ErrInvalidArgument
		}
		cfg.batchSize = n
		return nil
	}}
}

// WithPoolSlots overrides the number of event slots carved out of the
// zero-copy pool. The default is 256.
func WithPoolSlots(n int) Option {
	return &optionFunc{func(cfg *config) error {
		if n <= 0 {
			return ErrInvalidArgument
		}
		cfg.poolSlots = n
		return nil
	}}
}

// WithHugePages controls whether the pool attempts a huge-page-backed
// mapping before falling back to an ordinary anonymous mapping. Defaults to
// true; platforms without huge-page support fall back regardless.
func WithHugePages(enabled bool) Option {
	return &optionFunc{func(cfg *config) error {
		cfg.hugePages = enabled
		return nil
	}}
}

// WithRingCapacity overrides the event ring's capacity. Must be a power of
// two; the default is the smallest power of two at least twice the sum of
// the expected counter/timer/histogram counts, and never less than 2.
func WithRingCapacity(capacity uint64) Option {
	return &optionFunc{func(cfg *config) error {
		if capacity == 0 || capacity&(capacity-1) != 0 {
			return ErrInvalidArgument
		}
		cfg.ringCapacity = capacity
		return nil
	}}
}

// resolveOptions applies opts over the defaults derived from the expected
// aggregator counts. nil options are skipped.
func resolveOptions(expectedTotal int, opts []Option) (*config, error) {
	ringCapacity := nextPow2(uint64(expectedTotal) * 2)
	if ringCapacity < 2 {
		// A capacity-1 ring holds zero items (one slot is reserved), which
		// would drop every event including the shutdown sentinel; an
		// all-zero expected total still gets a usable ring.
		ringCapacity = 2
	}
	cfg := &config{
		batchSize:    64,
		poolSlots:    256,
		hugePages:    true,
		ringCapacity: ringCapacity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyConfig(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func nextPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
