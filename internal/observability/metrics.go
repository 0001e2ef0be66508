package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters exported at /metrics.
type Metrics struct {
	JobsCreated         prometheus.Counter
	JobTransitions      *prometheus.CounterVec
	CommissionsComputed prometheus.Counter
	LoginAttempts       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studioflow",
			Name:      "jobs_created_total",
			Help:      "Jobs created.",
		}),
		JobTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studioflow",
			Name:      "job_transitions_total",
			Help:      "Job status transitions by target status.",
		}, []string{"target"}),
		CommissionsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studioflow",
			Name:      "commissions_computed_total",
			Help:      "Commission snapshot computations.",
		}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studioflow",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.JobsCreated, m.JobTransitions, m.CommissionsComputed, m.LoginAttempts)
	return m
}
