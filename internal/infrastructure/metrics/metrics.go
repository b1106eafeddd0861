package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "botgpt"

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	// RepliesTotal counts assistant replies by conversation mode and outcome
	// (generated or fallback).
	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "replies_total",
			Help:      "Total assistant replies produced",
		},
		[]string{"mode", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Model call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)

	TokensUsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "tokens_used_total",
			Help:      "Total provider-reported tokens consumed",
		},
	)

	RetrievedChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "chunks",
			Help:      "Number of chunks injected into a rag prompt",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
	)

	TruncatedMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "truncated_messages_total",
			Help:      "Total history messages dropped to fit the context budget",
		},
	)
)

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordReply records an assistant reply and the time spent calling the model.
func RecordReply(mode, outcome string, tokens int, durationSec float64) {
	RepliesTotal.WithLabelValues(mode, outcome).Inc()
	GenerationDuration.WithLabelValues(mode).Observe(durationSec)
	if tokens > 0 {
		TokensUsedTotal.Add(float64(tokens))
	}
}

// RecordRetrieval records how many chunks were injected into a prompt.
func RecordRetrieval(chunks int) {
	RetrievedChunks.Observe(float64(chunks))
}

// RecordTruncation records history messages dropped by truncation.
func RecordTruncation(dropped int) {
	if dropped > 0 {
		TruncatedMessagesTotal.Add(float64(dropped))
	}
}
