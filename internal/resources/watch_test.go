package resources

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0o600))

	changes := make(chan string, 16)
	w, err := Watch(dir, 20*time.Millisecond, nil, func(name string) { changes <- name })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(file, []byte("v2"), 0o600))

	select {
	case name := <-changes:
		assert.Equal(t, file, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchDebounces(t *testing.T) {
	dir := t.TempDir()

	changes := make(chan string, 16)
	w, err := Watch(dir, 200*time.Millisecond, nil, func(name string) { changes <- name })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for _, name := range []string{"a.css", "b.css", "c.css"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case name := <-changes:
		t.Fatalf("unexpected second report for %s", name)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope"), 0, nil, func(string) {})
	assert.Error(t, err)
}

func TestWatchCloseTwice(t *testing.T) {
	w, err := Watch(t.TempDir(), 0, nil, func(string) {})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
