package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNewMetrics(reg)

	m.ObserveAnalysis("analyze", "local", 10*time.Millisecond)
	m.ObserveAnalysis("analyze", "local", 20*time.Millisecond)
	m.ObserveFallback("openai", "invalid_output")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("analyze", "local")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerFallbacks.WithLabelValues("openai", "invalid_output")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestMustNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)

	second.ObserveFallback("dify", "error")
	assert.Equal(t, 1.0, testutil.ToFloat64(first.providerFallbacks.WithLabelValues("dify", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("plan", "local", time.Second)
		m.ObserveFallback("x", "y")
	})
}
