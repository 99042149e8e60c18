// Package metrics holds the Prometheus collectors for the dashboard API:
// HTTP traffic plus the two externally-dependent operations, insight
// generation and voice uploads.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "goal_dashboard",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goal_dashboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goal_dashboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	insightGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goal_dashboard",
			Subsystem: "insights",
			Name:      "generations_total",
			Help:      "Total number of insight generation attempts.",
		},
		[]string{"type", "status"},
	)

	insightDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goal_dashboard",
			Subsystem: "insights",
			Name:      "generation_duration_seconds",
			Help:      "Duration of insight generation including the upstream call.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"type"},
	)

	voiceUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goal_dashboard",
			Subsystem: "voice",
			Name:      "uploads_total",
			Help:      "Total number of voice uploads by transcription outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		insightGenerations,
		insightDuration,
		voiceUploads,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument is a router middleware collecting HTTP metrics. The route
// template keeps path cardinality bounded; unmatched paths fall back to the
// raw path.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordInsightGeneration records one generation attempt.
func RecordInsightGeneration(insightType string, duration time.Duration, success bool) {
	status := "error"
	if success {
		status = "ok"
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	insightGenerations.WithLabelValues(insightType, status).Inc()
	insightDuration.WithLabelValues(insightType).Observe(duration.Seconds())
}

// RecordVoiceUpload records one upload with its transcription outcome.
func RecordVoiceUpload(processed bool) {
	status := "unprocessed"
	if processed {
		status = "transcribed"
	}
	voiceUploads.WithLabelValues(status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
