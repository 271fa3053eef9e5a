package mirror

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_mirror_messages_relayed",
	Help: "Number of messages copied between cells and the jail cam",
}, []string{"direction"})

var relayFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_mirror_relay_failures",
	Help: "Number of relayed messages the platform refused",
}, []string{"direction"})
