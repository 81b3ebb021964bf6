// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edusync"

var (
	// HTTPRequestsTotal counts handled requests by route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthzDecisionsTotal counts authorization policy outcomes.
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authz_decisions_total",
			Help:      "Total number of authorization decisions",
		},
		[]string{"role", "decision"},
	)

	// MediaUploadsTotal counts media uploads by backend and outcome.
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Total number of media uploads",
		},
		[]string{"provider", "outcome"},
	)

	// MediaUploadBytes sums the size of successful uploads.
	MediaUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_upload_bytes_total",
			Help:      "Total bytes uploaded to blob storage",
		},
	)
)

// RecordHTTPRequest records one finished request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAuthzDecision records one policy decision.
func RecordAuthzDecision(role, decision string) {
	if role == "" {
		role = "anonymous"
	}
	AuthzDecisionsTotal.WithLabelValues(role, decision).Inc()
}

// RecordMediaUpload records an upload attempt.
func RecordMediaUpload(provider string, size int64, err error) {
	if err != nil {
		MediaUploadsTotal.WithLabelValues(provider, "error").Inc()
		return
	}
	MediaUploadsTotal.WithLabelValues(provider, "success").Inc()
	MediaUploadBytes.Add(float64(size))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
