package handler

import (
	"errors"
	"net/http"
	"time"

	"oneshot/internal/model"
	"oneshot/internal/service"
	"oneshot/internal/store"
	"oneshot/internal/window"
	"oneshot/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// MetricsHandler serves metrics snapshots to the dashboard
type MetricsHandler struct {
	service service.AggregationServiceInterface
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(service service.AggregationServiceInterface) *MetricsHandler {
	return &MetricsHandler{service: service}
}

// Metrics handles GET /api/v1/sites/:id/metrics
// @Summary Get a metrics snapshot
// @Description Computes the metrics of a site over a named period or an explicit RFC3339 range
// @Tags metrics
// @Produce json
// @Param id path string true "Site ID"
// @Param period query string false "realtime, day, yesterday, 7d, 30d, month, lastMonth, 12mo or all" default(7d)
// @Param start query string false "Range start (RFC3339), requires end"
// @Param end query string false "Range end (RFC3339), requires start"
// @Success 200 {object} Response{data=model.MetricsSnapshot}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/sites/{id}/metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	siteID := c.Param("id")
	c.Set(middleware.SiteIDKey, siteID)

	q, err := parseMetricsQuery(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	snap, err := h.service.Metrics(c.Request.Context(), siteID, q)
	if err != nil {
		_ = c.Error(err)
		status, result, message := metricsError(err)
		period := q.Period
		if status == http.StatusBadRequest {
			period = "invalid"
		}
		middleware.RecordMetricsQuery(period, result, time.Since(start))
		fail(c, status, message)
		return
	}
	middleware.RecordMetricsQuery(snap.Period, "ok", time.Since(start))

	success(c, http.StatusOK, snap)
}

func parseMetricsQuery(c *gin.Context) (model.MetricsQuery, error) {
	q := model.MetricsQuery{Period: c.DefaultQuery("period", window.Week)}

	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" && rawEnd == "" {
		return q, nil
	}

	if rawStart != "" {
		t, err := time.Parse(time.RFC3339, rawStart)
		if err != nil {
			return q, errors.New("invalid start: expected RFC3339")
		}
		q.Start = &t
	}
	if rawEnd != "" {
		t, err := time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			return q, errors.New("invalid end: expected RFC3339")
		}
		q.End = &t
	}
	q.Period = window.Custom
	return q, nil
}

func metricsError(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrInvalidPeriod):
		return http.StatusBadRequest, "invalid_period", err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "Site not found"
	case errors.Is(err, service.ErrTenantNotConfigured):
		return http.StatusConflict, "not_configured", "Site store is not configured"
	case errors.Is(err, store.ErrRead):
		return http.StatusBadGateway, "store_error", "Failed to read events from the site store"
	default:
		return http.StatusInternalServerError, "error", "Failed to compute metrics"
	}
}
