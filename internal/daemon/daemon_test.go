package daemon

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	_, err := New(0, func(context.Context) error { return nil })
	require.Error(t, err)
	_, err = New(-time.Second, func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestRunBuildsImmediatelyAndOnTicks(t *testing.T) {
	var builds atomic.Int32
	d, err := New(20*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
