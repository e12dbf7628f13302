package publitioapi

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyMetrics = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "publitio_api_latency_ms",
		Help:    "The histogram of publitio API call latency",
		Buckets: prometheus.ExponentialBuckets(20, 2, 10), // 20ms to 10240ms
	},
	[]string{"method", "status_code"},
)

var invalidResponseMetrics = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "publitio_api_invalid_response_total",
		Help: "Total number of publitio API responses that were not valid JSON",
	},
	[]string{"method"},
)

// recordLatencyMetrics records one finished call. statusCode is 0 on transport errors.
func recordLatencyMetrics(method string, statusCode int, latencyMs float64) {
	latencyMetrics.With(prometheus.Labels{
		"method":      method,
		"status_code": strconv.Itoa(statusCode),
	}).Observe(latencyMs)
}
