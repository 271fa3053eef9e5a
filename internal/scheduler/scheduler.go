// Package scheduler runs the periodic sweeps: expiring sentences and
// collecting stale games.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultInterval is the time between sweeps
const DefaultInterval = 60 * time.Second

// Task is one unit of periodic work
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Config holds configuration for the scheduler
type Config struct {
	// Interval defaults to DefaultInterval
	Interval time.Duration

	// Tasks run in order on every tick
	Tasks []Task

	// Logger is optional, defaults to slog.Default()
	Logger *slog.Logger
}

// Scheduler runs its tasks on a ticker. A tick that lands while the previous
// sweep is still running is skipped.
type Scheduler struct {
	interval time.Duration
	tasks    []Task
	logger   *slog.Logger

	running *semaphore.Weighted
	start   sync.Once
	stop    sync.Once
	exit    chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if len(cfg.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		interval: interval,
		tasks:    cfg.Tasks,
		logger:   logger.With("component", "scheduler"),
		running:  semaphore.NewWeighted(1),
		exit:     make(chan struct{}),
	}, nil
}

// Start launches the ticker. Only the first call has any effect, so it is
// safe to call on every gateway Ready.
func (s *Scheduler) Start(ctx context.Context) {
	s.start.Do(func() {
		s.logger.Info("starting scheduler", "interval", s.interval, "tasks", len(s.tasks))

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()

			t := time.NewTicker(s.interval)
			defer t.Stop()
			for {
				select {
				case <-s.exit:
					return
				case <-ctx.Done():
					return
				case <-t.C:
					s.Tick(ctx)
				}
			}
		}()
	})
}

// Tick runs every task once unless a sweep is already in flight. It
// reports whether the sweep ran.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.TryAcquire(1) {
		ticksSkipped.Inc()
		s.logger.Warn("previous sweep still running, skipping tick")
		return false
	}
	defer s.running.Release(1)

	for _, task := range s.tasks {
		start := time.Now()
		err := task.Run(ctx)
		taskDuration.WithLabelValues(task.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			taskFailures.WithLabelValues(task.Name).Inc()
			s.logger.Error("scheduled task failed", "task", task.Name, "err", err)
		}
	}
	return true
}

// Shutdown stops the ticker and waits for an in-flight sweep
func (s *Scheduler) Shutdown() {
	s.stop.Do(func() {
		close(s.exit)
		s.wg.Wait()
		s.logger.Info("scheduler stopped")
	})
}
