package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oneshot",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "oneshot",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	eventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oneshot",
			Name:      "events_ingested_total",
			Help:      "Ingest attempts by result",
		},
		[]string{"result"},
	)

	metricsQueries = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "oneshot",
			Name:      "metrics_query_duration_seconds",
			Help:      "Metrics snapshot computation latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"period", "result"},
	)
)

// Metrics records request count and latency per route. Unmatched routes are
// grouped to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// MetricsHandler serves the Prometheus scrape endpoint
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordIngest counts an ingest attempt; result is "ok" or an error class
func RecordIngest(result string) {
	eventsIngested.WithLabelValues(result).Inc()
}

// RecordMetricsQuery observes the latency of a snapshot computation
func RecordMetricsQuery(period, result string, d time.Duration) {
	metricsQueries.WithLabelValues(period, result).Observe(d.Seconds())
}
