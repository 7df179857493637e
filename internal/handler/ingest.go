package handler

import (
	"errors"
	"net/http"

	"oneshot/internal/model"
	"oneshot/internal/service"
	"oneshot/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// IngestHandler receives events from the tracking snippet
type IngestHandler struct {
	service service.IngestServiceInterface
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(service service.IngestServiceInterface) *IngestHandler {
	return &IngestHandler{service: service}
}

// Ingest handles POST /api/analytics
// @Summary Record a pageview
// @Description Authenticates the site API key and writes the event to the site's store.
// @Description Client-sent browser, os, device, country and city are ignored.
// @Tags ingest
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.IngestRequest true "Pageview event"
// @Success 200 {object} model.IngestAck
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/analytics [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	bearer := middleware.Bearer(c)
	if bearer == "" {
		middleware.RecordIngest("unauthorized")
		fail(c, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	var req model.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RecordIngest("invalid")
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	c.Set(middleware.SiteIDKey, req.SiteID)

	ack, err := h.service.Ingest(c.Request.Context(), bearer, &req)
	if err != nil {
		_ = c.Error(err)
		status, result, message := ingestError(err)
		middleware.RecordIngest(result)
		fail(c, status, message)
		return
	}

	middleware.RecordIngest("ok")
	c.JSON(http.StatusOK, ack)
}

// Preflight handles OPTIONS /api/analytics
// @Summary CORS pre-flight
// @Tags ingest
// @Success 204
// @Router /api/analytics [options]
func (h *IngestHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func ingestError(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		return http.StatusUnauthorized, "unauthorized", "Missing bearer token"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusNotFound, "unknown_site", "Unknown site or API key"
	case errors.Is(err, service.ErrTenantNotConfigured):
		return http.StatusBadRequest, "not_configured", "Site store is not configured"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "invalid", err.Error()
	default:
		return http.StatusInternalServerError, "store_error", "Failed to store event"
	}
}
