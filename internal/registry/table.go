package registry

import (
	"sync"

	"github.com/go-perfcore/perfcore/internal/primeutil"
)

// table is the name -> aggregator map plus its parallel append-only
// fast-path index, shared by the counter/timer/histogram registries.
// Registry insertion happens on the worker goroutine in normal operation,
// but table is also read concurrently by Report and by fast-path lookups
// from any producer goroutine, hence the RWMutex.
type table[T any] struct {
	mu     sync.RWMutex
	byName map[string]int
	names  []string
	items  []*T
}

func newTable[T any](expected int) *table[T] {
	return &table[T]{
		byName: make(map[string]int, primeutil.NextPrime(expected)),
	}
}

// lookup returns the fast-path index for name, or -1 if unresolved.
func (t *table[T]) lookup(name string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	return -1
}

// getOrCreate resolves name to its item and index, creating a fresh item
// via newItem on first use. Returns created=true only when this call
// performed the creation.
func (t *table[T]) getOrCreate(name string, newItem func() *T) (item *T, idx int, created bool) {
	t.mu.RLock()
	if i, ok := t.byName[name]; ok {
		item = t.items[i]
		t.mu.RUnlock()
		return item, i, false
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.byName[name]; ok {
		return t.items[i], i, false
	}
	item = newItem()
	idx = len(t.items)
	t.items = append(t.items, item)
	t.names = append(t.names, name)
	t.byName[name] = idx
	return item, idx, true
}

// createOnce resolves name to a new item, failing if name already exists.
func (t *table[T]) createOnce(name string, newItem func() *T) (idx int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byName[name]; exists {
		return -1, false
	}
	item := newItem()
	idx = len(t.items)
	t.items = append(t.items, item)
	t.names = append(t.names, name)
	t.byName[name] = idx
	return idx, true
}

// byIndex returns the item at idx, or false if idx is out of range.
func (t *table[T]) byIndex(idx int) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx < 0 || idx >= len(t.items) {
		return nil, false
	}
	return t.items[idx], true
}

// snapshot returns the names and items in insertion (fast-path index)
// order.
func (t *table[T]) snapshot() ([]string, []*T) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, len(t.names))
	copy(names, t.names)
	items := make([]*T, len(t.items))
	copy(items, t.items)
	return names, items
}
