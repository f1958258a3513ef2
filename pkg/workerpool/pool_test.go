package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool := New(4, 16)

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	pool.StopWait()

	require.Equal(t, int64(10), count.Load())
}

func TestPoolSubmitQueueFull(t *testing.T) {
	pool := New(1, 1)
	defer pool.Stop()

	release := make(chan struct{})
	require.NoError(t, pool.Submit(func() { <-release }))

	// Wait for the worker to pick up the blocking task.
	require.Eventually(t, func() bool {
		if err := pool.Submit(func() { <-release }); err == nil {
			return true
		}
		return false
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, pool.Submit(func() {}), ErrQueueFull)
	close(release)
}

func TestPoolRecoversPanickingTask(t *testing.T) {
	pool := New(1, 4)

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { panic("task panic") }))
	require.NoError(t, pool.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	pool.StopWait()
}

func TestPoolSubmitAfterStop(t *testing.T) {
	pool := New(1, 1)
	pool.Stop()

	require.False(t, pool.IsRunning())
	require.Error(t, pool.Submit(func() {}))
}

func TestPoolSubmitNilTask(t *testing.T) {
	pool := New(1, 1)
	defer pool.Stop()

	require.NoError(t, pool.Submit(nil))
}

func TestPoolDefaultsInvalidSizes(t *testing.T) {
	pool := New(0, -1)
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("defaulted pool never ran the task")
	}
}
