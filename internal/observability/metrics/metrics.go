// Package metrics exposes Prometheus instruments for the HTTP surface and
// the document pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments the gin request path.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mizan_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mizan_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return m, nil
}

// GinMiddleware records a counter and latency sample per request.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// DocumentMetrics counts validation and dispatch outcomes.
type DocumentMetrics struct {
	validated          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	notifications      prometheus.Counter
	backups            prometheus.Counter
}

func NewDocumentMetrics() (*DocumentMetrics, error) {
	m := &DocumentMetrics{
		validated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mizan_records_validated_total",
			Help: "Records that passed validation, by kind.",
		}, []string{"kind"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mizan_validation_failures_total",
			Help: "Records rejected by validation, by kind.",
		}, []string{"kind"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mizan_notifications_dispatched_total",
			Help: "Notification rows fanned out to recipients.",
		}),
		backups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mizan_backups_exported_total",
			Help: "Backup documents exported.",
		}),
	}

	for _, c := range []prometheus.Collector{m.validated, m.validationFailures, m.notifications, m.backups} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *DocumentMetrics) RecordValidated(kind string) {
	if m == nil {
		return
	}
	m.validated.WithLabelValues(kind).Inc()
}

func (m *DocumentMetrics) RecordValidationFailure(kind string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(kind).Inc()
}

func (m *DocumentMetrics) RecordNotifications(n int) {
	if m == nil {
		return
	}
	m.notifications.Add(float64(n))
}

func (m *DocumentMetrics) RecordBackup() {
	if m == nil {
		return
	}
	m.backups.Inc()
}
