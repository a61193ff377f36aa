package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keychord.toml")
	writeFile(t, path, "")

	w, err := NewWatcher([]string{path}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, w.Files())

	changes := w.Start()
	writeFile(t, path, "[log]\nlevel = \"debug\"\n")

	select {
	case change := <-changes:
		assert.Equal(t, []string{abs}, change.Paths)
		assert.False(t, change.Time.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keychord.toml")
	writeFile(t, path, "")

	w, err := NewWatcher([]string{path}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	changes := w.Start()
	writeFile(t, filepath.Join(dir, "notes.txt"), "hello")

	select {
	case change := <-changes:
		t.Fatalf("unexpected change: %v", change.Paths)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")

	w, err := NewWatcher([]string{path}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	changes := w.Start()
	writeFile(t, path, "keymaps: []\n")

	select {
	case change := <-changes:
		require.Len(t, change.Paths, 1)
		assert.Equal(t, "user.yaml", filepath.Base(change.Paths[0]))
	case <-time.After(2 * time.Second):
		t.Fatal("creation not reported")
	}
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{filepath.Join(dir, "keychord.toml")})
	require.NoError(t, err)

	changes := w.Start()
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestWatcherBadDirectory(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "keychord.toml")})
	assert.Error(t, err)
}
