package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrNilConfig, err)

	_, err = New(&Config{})
	assert.Equal(t, ErrNoTasks, err)

	s, err := New(&Config{Tasks: []Task{{Name: "noop", Run: func(context.Context) error { return nil }}}})
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, s.interval)
}

func TestTickRunsEveryTaskDespiteFailures(t *testing.T) {
	var order []string
	s, err := New(&Config{Tasks: []Task{
		{Name: "expire", Run: func(context.Context) error {
			order = append(order, "expire")
			return errors.New("redis down")
		}},
		{Name: "stale", Run: func(context.Context) error {
			order = append(order, "stale")
			return nil
		}},
	}})
	require.NoError(t, err)

	assert.True(t, s.Tick(context.Background()))
	assert.Equal(t, []string{"expire", "stale"}, order)
}

func TestTickSkipsWhileSweepRunning(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var runs atomic.Int32

	s, err := New(&Config{Tasks: []Task{{Name: "slow", Run: func(context.Context) error {
		runs.Add(1)
		close(entered)
		<-release
		return nil
	}}}})
	require.NoError(t, err)

	done := make(chan bool)
	go func() { done <- s.Tick(context.Background()) }()

	<-entered
	assert.False(t, s.Tick(context.Background()))

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), runs.Load())
}

func TestStartOnlyOnce(t *testing.T) {
	var runs atomic.Int32
	s, err := New(&Config{
		Interval: 10 * time.Millisecond,
		Tasks: []Task{{Name: "count", Run: func(context.Context) error {
			runs.Add(1)
			return nil
		}}},
	})
	require.NoError(t, err)

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Shutdown()
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())

	s.Shutdown()
}

func TestConcurrentShutdown(t *testing.T) {
	s, err := New(&Config{
		Interval: 10 * time.Millisecond,
		Tasks: []Task{{Name: "noop", Run: func(context.Context) error {
			return nil
		}}},
	})
	require.NoError(t, err)

	s.Start(context.Background())

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, s.Shutdown)
		}()
	}
	wg.Wait()
}
