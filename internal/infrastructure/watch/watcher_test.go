package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWatcherRejectsMissingAndDirs(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileWatcher(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = NewFileWatcher(dir, nil)
	assert.Error(t, err)
}

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "organize.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(target, []byte("rules: []\n"), 0o644))

	w, err := NewFileWatcher(target, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes <- struct{}{} })
	}()

	// Writes to a sibling file are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for received := false; !received; {
		select {
		case <-changes:
			received = true
		case <-tick.C:
			require.NoError(t, os.WriteFile(target, []byte("rules: []\n# edit\n"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
