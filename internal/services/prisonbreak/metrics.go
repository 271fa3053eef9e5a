package prisonbreak

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jailbird_prison_breaks_started",
	Help: "Number of prison-break games started",
})

var gamesCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jailbird_prison_breaks_completed",
	Help: "Number of prison-break games won at the great escape",
})

var attempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_prison_break_attempts",
	Help: "Number of evaluated prison-break attempts",
}, []string{"outcome"})

var spectatorEffects = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_spectator_effects",
	Help: "Number of attempts changed by spectators",
}, []string{"effect"})

var itemsThrown = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_items_thrown",
	Help: "Number of items thrown at prisoners",
}, []string{"item"})
