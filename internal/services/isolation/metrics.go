package isolation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var subOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_isolation_operations",
	Help: "Number of isolation sub-operations attempted",
}, []string{"op"})

var subOperationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_isolation_failures",
	Help: "Number of isolation sub-operations the platform refused",
}, []string{"op"})
