package tether

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableKeysAreNeverReused(t *testing.T) {
	var tb table[string]

	a := tb.add("a")
	require.NotZero(t, a)
	_, ok := tb.remove(a)
	require.True(t, ok)

	b := tb.add("b")
	assert.NotEqual(t, a, b)

	_, ok = tb.get(a)
	assert.False(t, ok)
	v, ok := tb.get(b)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestTableRemoveOnce(t *testing.T) {
	var tb table[int]
	key := tb.add(7)

	v, ok := tb.remove(key)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = tb.remove(key)
	assert.False(t, ok)
	assert.Zero(t, tb.len())
}

func TestTableConcurrentAdd(t *testing.T) {
	var tb table[int]
	var wg sync.WaitGroup

	keys := make([]uintptr, 64)
	for i := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys[i] = tb.add(i)
		}()
	}
	wg.Wait()

	seen := make(map[uintptr]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %d", k)
		seen[k] = true
	}
	assert.Equal(t, len(keys), tb.len())
}
