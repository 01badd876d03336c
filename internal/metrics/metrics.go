package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Proximity engine.
	QueriesTotal   *prometheus.CounterVec
	QuerySeconds   prometheus.Histogram
	CandidateCount prometheus.Histogram
	Transitions    *prometheus.CounterVec
	LocationErrors *prometheus.CounterVec

	// Address backfill.
	PointsProcessed *prometheus.CounterVec
	APIErrors       prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		QueriesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geotourist_proximity_queries_total",
			Help: "Total number of proximity queries by outcome.",
		}, []string{"status"}),
		QuerySeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geotourist_proximity_query_duration_seconds",
			Help:    "Duration of proximity queries, including the storage read.",
			Buckets: prometheus.DefBuckets,
		}),
		CandidateCount: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geotourist_proximity_candidates",
			Help:    "Number of points found within the radius per query.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		Transitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geotourist_selection_transitions_total",
			Help: "Total number of selection transitions by kind.",
		}, []string{"kind"}),
		LocationErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geotourist_location_errors_total",
			Help: "Total number of errors reported by the location source.",
		}, []string{"kind"}),
		PointsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geotourist_backfill_points_processed_total",
			Help: "Total number of points processed by the address backfill.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geotourist_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geotourist_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geotourist_backfill_active_workers",
			Help: "Current number of active workers processing points.",
		}),
	}
}
