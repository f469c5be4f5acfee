package metrics_test

import (
	"testing"

	"github.com/2beens/gymlog/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersOnGivenRegistry(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()

	m.CounterSubmissions.WithLabelValues("ok").Inc()
	m.CounterSubmissions.WithLabelValues("ok").Inc()
	m.CounterOverloadUpdates.WithLabelValues("increased").Inc()
	m.CounterRateLimitedRequests.Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterSubmissions.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterOverloadUpdates.WithLabelValues("increased")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRateLimitedRequests))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := familyNames(families)
	assert.True(t, names["backend_test_server_end_of_day_submissions"])
	assert.True(t, names["backend_test_server_rate_limited_requests"])

	// two managers on separate registries must not collide
	assert.NotPanics(t, func() {
		metrics.NewTestManager()
		metrics.NewTestManager()
	})
}

func TestSetupPrometheus_ExtraCollectors(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_collector_total", Help: "test"})
	reg := metrics.SetupPrometheus(extra)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, familyNames(families)["extra_collector_total"])
}

func familyNames(families []*dto.MetricFamily) map[string]bool {
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}
