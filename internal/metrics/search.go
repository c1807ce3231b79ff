package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and account Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearserve",
			Name:      "search_requests_total",
			Help:      "Total number of proximity searches",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nearserve",
			Name:      "search_duration_seconds",
			Help:      "Proximity search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nearserve",
			Name:      "search_results",
			Help:      "Providers returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50},
		},
	)

	SuggestionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearserve",
			Name:      "suggestion_requests_total",
			Help:      "Total number of suggestion lookups",
		},
		[]string{"status"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearserve",
			Name:      "registrations_total",
			Help:      "Total registration attempts",
		},
		[]string{"status"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearserve",
			Name:      "logins_total",
			Help:      "Total login attempts",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SuggestionRequestsTotal)
	prometheus.MustRegister(RegistrationsTotal)
	prometheus.MustRegister(LoginsTotal)
	searchMetricsRegistered = true
}
