package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("{}"), 0o644))

	var builds atomic.Int32
	w, err := New(dir, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.debounce = 30 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial build fires before watching.
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte(`{"identifier":"/x"}`), 0o644))
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), func(context.Context) error { return nil })
	require.NoError(t, err)
	require.Error(t, w.Run(context.Background()))
}
