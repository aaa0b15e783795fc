package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_registered_total",
			Help: "Total number of completed intake registrations",
		},
	)

	testEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_events_total",
			Help: "Total number of webhook test events by processing result",
		},
		[]string{"result"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_notifications_total",
			Help: "Total number of test-result notifications by delivery status",
		},
		[]string{"status"},
	)

	funnelStageLeads = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "funnel_stage_leads",
			Help: "Current number of leads per funnel stage",
		},
		[]string{"stage"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadRegistered() {
	leadsRegistered.Inc()
}

func RecordTestEvent(result string) {
	testEventsTotal.WithLabelValues(result).Inc()
}

func RecordNotification(status string) {
	notificationsTotal.WithLabelValues(status).Inc()
}

func SetStageLeads(stage string, count int) {
	funnelStageLeads.WithLabelValues(stage).Set(float64(count))
}
