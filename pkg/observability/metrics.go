// Package observability provides Prometheus metrics for the Ark adapter:
// provider call counts and latency, token usage, stream event counts and an
// instrumented HTTP transport for outbound vendor requests.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// HTTPRequestsTotal counts outbound HTTP requests by endpoint path and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedkit_http_requests_total",
			Help: "Outbound HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration records time to response headers for outbound requests.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedkit_http_request_duration_seconds",
			Help:    "Outbound HTTP request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "path"},
	)

	// StreamingConnections tracks the number of open SSE streams.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "seedkit_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// ProviderRequestsTotal counts Generate and Stream calls by protocol and outcome.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedkit_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"protocol", "model", "status"},
	)

	// ProviderLatency records end-to-end call latency in seconds. For streams
	// it covers the time until the terminal event.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedkit_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"protocol", "model"},
	)

	// ProviderTokensTotal counts reported tokens by direction (input, output,
	// cache_read, reasoning).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedkit_provider_tokens_total",
			Help: "Token count",
		},
		[]string{"protocol", "model", "direction"},
	)

	// StreamEventsTotal counts normalized stream events by type.
	StreamEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedkit_stream_events_total",
			Help: "Stream events emitted",
		},
		[]string{"protocol", "type"},
	)

	// StreamErrorsTotal counts streams that ended with an error, by error type.
	StreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedkit_stream_errors_total",
			Help: "Stream errors",
		},
		[]string{"protocol", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		StreamingConnections,
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderTokensTotal,
		StreamEventsTotal,
		StreamErrorsTotal,
	)
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
