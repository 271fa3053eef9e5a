package spectator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var votesCounted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_spectator_votes",
	Help: "Number of jail cam reactions counted as votes",
}, []string{"signal"})

var votesRejected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jailbird_spectator_votes_rejected",
	Help: "Number of votes removed because the reactor is quarantined",
})
