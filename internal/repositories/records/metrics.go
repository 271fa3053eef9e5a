package records

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var persistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_records_persist_failures",
	Help: "Number of record writes that failed to reach redis",
}, []string{"collection", "op"})

var hydrations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_records_hydrations",
	Help: "Number of communities loaded from redis into memory",
}, []string{"collection"})
