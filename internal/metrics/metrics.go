package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auction_gateway",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "auction_gateway",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	downstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auction_gateway",
			Subsystem: "downstream",
			Name:      "calls_total",
			Help:      "Downstream calls by service and resulting status (599 for transport faults).",
		},
		[]string{"service", "status"},
	)

	downstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "auction_gateway",
			Subsystem: "downstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of downstream calls.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"service"},
	)

	aggregations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auction_gateway",
			Subsystem: "gateway",
			Name:      "aggregations_total",
			Help:      "Aggregation requests by result (ok or fault).",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		downstreamCalls,
		downstreamDuration,
		aggregations,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one handled request. path is the route template, not the raw URL.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDownstreamCall records one settled downstream call.
func ObserveDownstreamCall(service string, status int, duration time.Duration) {
	downstreamCalls.WithLabelValues(service, strconv.Itoa(status)).Inc()
	downstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordAggregation counts one gateway fan-out.
func RecordAggregation(ok bool) {
	result := "ok"
	if !ok {
		result = "fault"
	}
	aggregations.WithLabelValues(result).Inc()
}
