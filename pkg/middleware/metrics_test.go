package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/api/v1/sites/:id/metrics", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", MetricsHandler())

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/sites/"+id+"/metrics", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	RecordIngest("ok")
	RecordMetricsQuery("7d", "ok", 10*time.Millisecond)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `oneshot_http_requests_total{method="GET",route="/api/v1/sites/:id/metrics",status="200"} 2`)
	assert.NotContains(t, body, `route="/api/v1/sites/a/metrics"`)
	assert.Contains(t, body, `oneshot_events_ingested_total{result="ok"} 1`)
	assert.Contains(t, body, "oneshot_metrics_query_duration_seconds")
	assert.NotContains(t, body, `route="/metrics"`)
}
