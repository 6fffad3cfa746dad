package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the directory's domain metrics
type Metrics struct {
	ProfilesCreated     prometheus.Counter
	VerificationActions *prometheus.CounterVec
	Searches            prometheus.Counter
	SearchResults       prometheus.Histogram

	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProfilesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "practitioner_profiles_created_total",
			Help:      "Total number of practitioner profiles created",
		}),
		VerificationActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_actions_total",
			Help:      "Admin verification actions by kind",
		}, []string{"action"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of practitioner searches",
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of practitioners returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ProfilesCreated,
			m.VerificationActions,
			m.Searches,
			m.SearchResults,
			m.DatabaseOperations,
			m.DatabaseLatency,
		)
	}
	return m
}

// NewNop returns unregistered metrics, for tests and tools.
func NewNop() *Metrics {
	return New("test", nil)
}

// ObserveSearch records one search and its result count.
func (m *Metrics) ObserveSearch(results int) {
	m.Searches.Inc()
	m.SearchResults.Observe(float64(results))
}

// ObserveDB records the outcome and duration of a database call.
func (m *Metrics) ObserveDB(operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(seconds)
}
