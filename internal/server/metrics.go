package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interviewprep_http_requests_total",
		Help: "HTTP requests by method and status.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interviewprep_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	})

	completedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interviewprep_sessions_completed_total",
		Help: "Interview sessions completed and archived.",
	})
)

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		timer := prometheus.NewTimer(requestDuration)
		defer func() {
			timer.ObserveDuration()
			requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		}()
		next.ServeHTTP(ww, r)
	})
}

func handleMetrics() http.Handler {
	return promhttp.Handler()
}
