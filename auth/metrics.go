package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	codesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "auth",
		Name:      "verification_codes_issued_total",
		Help:      "The total number of verification codes sent",
	}, []string{"purpose"})

	verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "auth",
		Name:      "verifications_total",
		Help:      "The total number of verification attempts by outcome",
	}, []string{"purpose", "outcome"})

	challengesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "auth",
		Name:      "challenges_swept_total",
		Help:      "The total number of abandoned verification codes removed",
	})
)

// RecordSwept counts challenges dropped by a sweep.
func RecordSwept(n int) {
	challengesSwept.Add(float64(n))
}
