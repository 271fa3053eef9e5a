package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ticksSkipped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jailbird_scheduler_ticks_skipped",
	Help: "Number of ticks skipped because the previous sweep was still running",
})

var taskFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_scheduler_task_failures",
	Help: "Number of scheduled task runs that returned an error",
}, []string{"task"})

var taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "jailbird_scheduler_task_duration_seconds",
	Help:    "Duration of scheduled task runs",
	Buckets: prometheus.DefBuckets,
}, []string{"task"})
