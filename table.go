package tether

import "sync"

// table hands out opaque keys for values that native code refers to. Keys
// start at 1 and are never reused, so a stale key cannot alias a newer entry.
type table[T any] struct {
	mu      sync.Mutex
	entries map[uintptr]T
	counter uintptr
}

func (t *table[T]) add(v T) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entries == nil {
		t.entries = make(map[uintptr]T)
	}
	t.counter++
	t.entries[t.counter] = v
	return t.counter
}

func (t *table[T]) get(key uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[key]
	return v, ok
}

// remove deletes key and reports whether it was present. Only the first
// remove of a key returns true.
func (t *table[T]) remove(key uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	return v, ok
}

func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
