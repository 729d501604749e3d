// Package metrics exposes catalog cache counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheLookups *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brandgate_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result.",
		}, []string{"result"}),
	}
}

// IncrementLookup records one cache lookup with result "hit" or "miss".
// Nil-safe.
func (m *Metrics) IncrementLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
