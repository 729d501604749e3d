// Package metrics exposes payment engine counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CheckoutsCreated prometheus.Counter
	Transitions      *prometheus.CounterVec
	SettledAmount    prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CheckoutsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brandgate_checkouts_created_total",
			Help: "Checkout sessions opened with the payment provider.",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brandgate_transaction_transitions_total",
			Help: "Transaction terminal transitions by resulting status.",
		}, []string{"status"}),
		SettledAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "brandgate_settled_amount",
			Help:    "Settled checkout amounts in currency units.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
	}
}

// IncrementCheckout records one opened checkout session. Nil-safe.
func (m *Metrics) IncrementCheckout() {
	if m == nil {
		return
	}
	m.CheckoutsCreated.Inc()
}

// ObserveTransition records a terminal transition. The amount is observed
// only for paid transactions. Nil-safe.
func (m *Metrics) ObserveTransition(status string, amount float64) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
	if status == "paid" {
		m.SettledAmount.Observe(amount)
	}
}
