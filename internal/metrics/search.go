package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parksite",
			Name:      "search_requests_total",
			Help:      "Total number of accepted search queries",
		},
	)

	SearchSourceQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parksite",
			Name:      "search_source_queries_total",
			Help:      "Remote source queries by outcome",
		},
		[]string{"source", "status"}, // "ok" / "error"
	)

	SearchSourceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parksite",
			Name:      "search_source_duration_seconds",
			Help:      "Remote source query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"source"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "parksite",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchSourceQueriesTotal)
	prometheus.MustRegister(SearchSourceDuration)
	prometheus.MustRegister(SearchResults)
	searchMetricsRegistered = true
}
