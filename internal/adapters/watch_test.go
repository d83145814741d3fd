package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchAdapterRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config")
	other := filepath.Join(dir, "unrelated")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var mu sync.Mutex
	var changes []string
	done := make(chan error, 1)
	go func() {
		done <- NewWatchAdapter(20*time.Millisecond).Watch(ctx, []string{watched}, func(changed string) error {
			mu.Lock()
			defer mu.Unlock()
			changes = append(changes, changed)
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for range 3 {
		require.NoError(t, os.WriteFile(watched, []byte("b"), 0o644))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	abs, err := filepath.Abs(watched)
	require.NoError(t, err)
	for _, changed := range changes {
		assert.Equal(t, abs, changed)
	}
}

func TestWatchAdapterRejectsEmptyPaths(t *testing.T) {
	err := NewWatchAdapter(0).Watch(t.Context(), []string{""}, func(string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no paths to watch")
}
