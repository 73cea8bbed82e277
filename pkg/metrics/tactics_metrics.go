// Package metrics exposes Prometheus collectors for analysis activity.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tactics"

// Metrics groups the analysis collectors.
type Metrics struct {
	analyses          *prometheus.CounterVec
	providerFallbacks *prometheus.CounterVec
	duration          *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns metrics registered once on the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// MustNewMetrics registers the collectors on reg and panics on a conflicting
// registration. Tests pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Completed analyses by operation and result source.",
			},
			[]string{"operation", "source"},
		),
		providerFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_fallbacks_total",
				Help:      "Remote provider results discarded in favor of the local computation.",
			},
			[]string{"provider", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Wall time of analysis operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	m.analyses = registerOrReuse(reg, m.analyses)
	m.providerFallbacks = registerOrReuse(reg, m.providerFallbacks)
	m.duration = registerOrReuse(reg, m.duration)
	return m
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveAnalysis counts a finished analysis and records its duration.
func (m *Metrics) ObserveAnalysis(operation, source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(operation, source).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveFallback counts a provider result replaced by the local computation.
func (m *Metrics) ObserveFallback(provider, reason string) {
	if m == nil {
		return
	}
	m.providerFallbacks.WithLabelValues(provider, reason).Inc()
}
