package registry

import "sync/atomic"

// Counter is a monotonically non-decreasing 64-bit accumulator.
type Counter struct {
	value atomic.Uint64
}

// Add atomically adds delta to the counter's value.
func (c *Counter) Add(delta uint64) {
	c.value.Add(delta)
}

// Load returns the counter's current value.
func (c *Counter) Load() uint64 {
	return c.value.Load()
}
