package simulation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "flocking"

// Metrics holds the Prometheus collectors updated by the loop.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	merged       prometheus.Counter
	pending      prometheus.Gauge
	population   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg, when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Number of simulation ticks completed.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent applying the rules of one tick, pause excluded.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		merged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "entities_merged_total",
			Help:      "Entities moved from the pending queue to the live population.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pending_entities",
			Help:      "Entities staged after the last merge, waiting for the next tick.",
		}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "population",
			Help:      "Live entities by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.ticks, m.tickDuration, m.merged, m.pending, m.population)
	}
	return m
}

func (m *Metrics) observeTick(rules time.Duration, merged, pending, plain, predators int) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(rules.Seconds())
	m.merged.Add(float64(merged))
	m.pending.Set(float64(pending))
	m.population.WithLabelValues("plain").Set(float64(plain))
	m.population.WithLabelValues("predator").Set(float64(predators))
}
