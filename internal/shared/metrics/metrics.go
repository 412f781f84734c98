package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	analyzerInvocations = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_invocations_total",
			Help: "Analyzer invocations by mode and result",
		},
		[]string{"mode", "result"},
	)

	analyzerAttempts = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_candidate_attempts_total",
			Help: "Individual candidate runs by command and outcome",
		},
		[]string{"command", "outcome"},
	)

	analyzerDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_duration_seconds",
			Help:    "Wall time of a full analyzer invocation across all candidates",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)

	fallbacks = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_responses_total",
			Help: "Responses served from fixed demo values",
		},
		[]string{"endpoint"},
	)

	httpRequests = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry exposes the private registry for tests and embedding.
func Registry() *prometheus.Registry {
	return registry
}

// IncInvocation counts one analyzer invocation. ok reports whether any candidate succeeded.
func IncInvocation(mode string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	analyzerInvocations.WithLabelValues(mode, result).Inc()
}

// IncAttempt counts one candidate run.
func IncAttempt(command, outcome string) {
	analyzerAttempts.WithLabelValues(command, outcome).Inc()
}

// ObserveAnalyzerDuration records how long an invocation took.
func ObserveAnalyzerDuration(mode string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	analyzerDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// IncFallback counts a response built from fallback values.
func IncFallback(endpoint string) {
	fallbacks.WithLabelValues(endpoint).Inc()
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
