// Package metrics exposes giving counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DonationsSettled prometheus.Counter
	DonationAmount   prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		DonationsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brandgate_donations_settled_total",
			Help: "Donations settled into the ledger.",
		}),
		DonationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "brandgate_donation_amount",
			Help:    "Settled donation amounts in currency units.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
	}
}

// ObserveSettlement records one settled donation. Nil-safe so services can
// run without metrics in tests.
func (m *Metrics) ObserveSettlement(amount float64) {
	if m == nil {
		return
	}
	m.DonationsSettled.Inc()
	m.DonationAmount.Observe(amount)
}
