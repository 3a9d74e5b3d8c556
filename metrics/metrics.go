// Package metrics provides Prometheus metrics for the GitLab wiki bridge.
// It tracks tool call counts, latencies, wiki API traffic, and publish outcomes.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "gitlab_wiki_bridge"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikiAPIRequestsTotal counts GitLab wiki API requests by method and status.
	// Status 0 marks a transport-level failure with no HTTP response.
	WikiAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_requests_total",
		Help:      "Total wiki API requests by HTTP method and status code",
	}, []string{"method", "status"})

	// WikiAPILatency measures wiki API call latency by HTTP method
	WikiAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_api_latency_seconds",
		Help:      "Wiki API call latency by HTTP method",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	// PublishOutcomes counts publish attempts by their outcome tag
	PublishOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "publish_outcomes_total",
		Help:      "Publish attempts by outcome (created, updated, create_ignored_error)",
	}, []string{"outcome"})

	// ClipboardWrites counts clipboard copy attempts by status
	ClipboardWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "clipboard_writes_total",
		Help:      "Clipboard copy attempts by status",
	}, []string{"status"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a wiki API call. Pass status 0 when the request
// failed before a response arrived.
func RecordAPICall(method string, status int, duration float64) {
	WikiAPIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	WikiAPILatency.WithLabelValues(method).Observe(duration)
}

// RecordPublishOutcome records the outcome tag of a publish attempt
func RecordPublishOutcome(outcome string) {
	PublishOutcomes.WithLabelValues(outcome).Inc()
}

// RecordClipboardWrite records a clipboard copy attempt
func RecordClipboardWrite(ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	ClipboardWrites.WithLabelValues(status).Inc()
}
