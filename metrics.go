package gota

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-indicator call counts and latencies.
type Metrics struct {
	calls    *prometheus.CounterVec   // labels: indicator, outcome
	duration *prometheus.HistogramVec // labels: indicator
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gota_indicator_calls_total",
			Help: "Indicator computations by outcome",
		}, []string{"indicator", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gota_indicator_duration_seconds",
			Help:    "Time spent computing an indicator",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"indicator"}),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(indicator string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.calls.WithLabelValues(indicator, outcome).Inc()
	m.duration.WithLabelValues(indicator).Observe(d.Seconds())
}
