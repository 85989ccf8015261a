// Package primeutil provides the smallest-prime-at-least-n helper used to
// size the registry's name-keyed maps.
package primeutil

import "golang.org/x/exp/constraints"

// NextPrime returns the smallest prime number p such that p >= n. Values of
// n below 2 return 2, the smallest prime. Used by the registry to turn an
// "expected number of counters/timers/histograms" hint into a map size hint
// that behaves reasonably for open-addressing-style growth, mirroring the
// capacity convention of a hand-rolled hash table even though the registry
// itself is backed by Go's builtin map. Generic over any signed or unsigned
// integer type so callers sizing from a uint64 (e.g. a configured slot
// count) don't need an extra conversion at the call site.
func NextPrime[N constraints.Integer](n N) N {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime[N constraints.Integer](n N) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := N(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
