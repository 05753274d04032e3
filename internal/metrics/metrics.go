package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and binaries never collide on
// the global one.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec

	exportsTotal *prometheus.CounterVec
	exportRows   *prometheus.CounterVec

	outboxPublished *prometheus.CounterVec
	outboxFailed    *prometheus.CounterVec

	cacheInvalidations *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_errors_total",
				Help:      "Total number of HTTP responses with status >= 400",
			},
			[]string{"method", "path", "status"},
		),
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of generated export files",
			},
			[]string{"format"},
		),
		exportRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "export_rows_total",
				Help:      "Total number of employee rows written to export files",
			},
			[]string{"format"},
		),
		outboxPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_events_published_total",
				Help:      "Total number of outbox events published to Kafka",
			},
			[]string{"event_type"},
		),
		outboxFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_events_failed_total",
				Help:      "Total number of outbox events that failed to publish",
			},
			[]string{"event_type"},
		),
		cacheInvalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Total number of cache invalidations triggered by lifecycle events",
			},
			[]string{"event_type"},
		),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.errorTotal,
		m.exportsTotal,
		m.exportRows,
		m.outboxPublished,
		m.outboxFailed,
		m.cacheInvalidations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records every request under its route template, so /employees/1
// and /employees/2 share one series.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			m.errorTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ObserveExport(format string, rows int) {
	m.exportsTotal.WithLabelValues(format).Inc()
	m.exportRows.WithLabelValues(format).Add(float64(rows))
}

func (m *Metrics) ObserveOutbox(eventType string, err error) {
	if err != nil {
		m.outboxFailed.WithLabelValues(eventType).Inc()
		return
	}
	m.outboxPublished.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObserveInvalidation(eventType string) {
	m.cacheInvalidations.WithLabelValues(eventType).Inc()
}
