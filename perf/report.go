package perf

import (
	"fmt"
	"io"
)

// Report writes a human-readable snapshot of every counter, timer, and
// histogram to w in the canonical three-section format (spec.md §6):
//
//	=== Performance Report ===
//	-- Counters --
//	<name>: <value>
//	-- Timers (ns) --
//	<name>: <value>
//	-- Histograms --
//	<name>:
//	  <= <threshold>: <count>
//
// Safe to call concurrently with producers and with the worker at any point
// after Init; it takes a synchronous snapshot of the registry and never
// blocks on the ring or pool. Atomic loads underneath use relaxed-or-stronger
// ordering, so the snapshot may lag behind the most recently enqueued (but
// not yet dispatched) events.
func Report(w io.Writer) error {
	c := current()
	if c == nil {
		return ErrNotInitialised
	}
	return c.report(w)
}

func (c *core) report(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "=== Performance Report ==="); err != nil {
		return err
	}

	names, values := c.registry.CounterSnapshot()
	if _, err := fmt.Fprintln(w, "-- Counters --"); err != nil {
		return err
	}
	for i, name := range names {
		if _, err := fmt.Fprintf(w, "%s: %d\n", name, values[i]); err != nil {
			return err
		}
	}

	tNames, tValues := c.registry.TimerSnapshot()
	if _, err := fmt.Fprintln(w, "-- Timers (ns) --"); err != nil {
		return err
	}
	for i, name := range tNames {
		if _, err := fmt.Fprintf(w, "%s: %d\n", name, tValues[i]); err != nil {
			return err
		}
	}

	hNames, hBins, hCounts := c.registry.HistogramSnapshot()
	if _, err := fmt.Fprintln(w, "-- Histograms --"); err != nil {
		return err
	}
	for i, name := range hNames {
		if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
			return err
		}
		bins := hBins[i]
		counts := hCounts[i]
		for j, bin := range bins {
			if _, err := fmt.Fprintf(w, "  <= %d: %d\n", bin, counts[j]); err != nil {
				return err
			}
		}
	}
	return nil
}
