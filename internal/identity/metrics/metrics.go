package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the identity service.
type Metrics struct {
	LoginAttempts *prometheus.CounterVec
	Registrations prometheus.Counter
}

// New creates and registers identity metrics.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brandgate_login_attempts_total",
			Help: "Login attempts by principal kind and outcome.",
		}, []string{"kind", "outcome"}),
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brandgate_member_registrations_total",
			Help: "Total number of members registered.",
		}),
	}
}

func (m *Metrics) IncrementLogin(kind, outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncrementRegistrations() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}
