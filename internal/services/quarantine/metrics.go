package quarantine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var quarantinesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_quarantines_started",
	Help: "Number of members quarantined",
}, []string{"trigger"})

var quarantinesReleased = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_quarantines_released",
	Help: "Number of members released from quarantine",
}, []string{"trigger"})

var sentenceAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jailbird_sentence_adjustments",
	Help: "Number of sentence adjustments applied",
}, []string{"direction", "reason"})

var expiryScanErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jailbird_expiry_scan_errors",
	Help: "Number of guilds or records the expiry scan could not process",
})
