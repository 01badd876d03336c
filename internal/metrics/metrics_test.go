package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.QueriesTotal.WithLabelValues("success").Inc()
	m.Transitions.WithLabelValues("nearest").Inc()
	m.LocationErrors.WithLabelValues("closed").Inc()
	m.PointsProcessed.WithLabelValues("failure").Inc()
	m.RequestSeconds.WithLabelValues("nominatim").Observe(0.2)
	m.QuerySeconds.Observe(0.01)
	m.CandidateCount.Observe(3)
	m.APIErrors.Inc()
	m.ActiveWorkers.Set(2)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.ElementsMatch(t, []string{
		"geotourist_proximity_queries_total",
		"geotourist_proximity_query_duration_seconds",
		"geotourist_proximity_candidates",
		"geotourist_selection_transitions_total",
		"geotourist_location_errors_total",
		"geotourist_backfill_points_processed_total",
		"geotourist_geocoding_provider_api_errors_total",
		"geotourist_geocoding_provider_request_duration_seconds",
		"geotourist_backfill_active_workers",
	}, names)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.ActiveWorkers), 0)
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.NewMetrics(prometheus.NewRegistry())
		metrics.NewMetrics(prometheus.NewRegistry())
	})
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() { metrics.NewMetrics(reg) })
}
