package handler

import (
	"errors"
	"net/http"

	"oneshot/internal/model"
	"oneshot/internal/service"
	"oneshot/internal/store"
	"oneshot/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// SiteHandler handles site onboarding, store provisioning and removal
type SiteHandler struct {
	service service.SiteServiceInterface
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(service service.SiteServiceInterface) *SiteHandler {
	return &SiteHandler{service: service}
}

// Create handles POST /api/v1/sites
// @Summary Onboard a site
// @Description Registers a site and returns its API key. The key is not shown again.
// @Tags sites
// @Accept json
// @Produce json
// @Param request body model.CreateSiteRequest true "Site"
// @Success 201 {object} Response{data=model.CreateSiteResponse}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sites [post]
func (h *SiteHandler) Create(c *gin.Context) {
	var req model.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, service.ErrValidation) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to create site")
		return
	}

	c.Set(middleware.SiteIDKey, resp.ID)
	success(c, http.StatusCreated, resp)
}

// Get handles GET /api/v1/sites/:id
// @Summary Get a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} Response{data=model.SiteInfo}
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sites/{id} [get]
func (h *SiteHandler) Get(c *gin.Context) {
	siteID := c.Param("id")
	c.Set(middleware.SiteIDKey, siteID)

	info, err := h.service.Get(c.Request.Context(), siteID)
	if err != nil {
		_ = c.Error(err)
		h.siteError(c, err)
		return
	}

	success(c, http.StatusOK, info)
}

// VerifyStore handles POST /api/v1/store/verify
// @Summary Verify a store
// @Description Creates the events table in a candidate store and checks it is reachable
// @Tags sites
// @Accept json
// @Produce json
// @Param request body model.StoreCredentialsRequest true "Store credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/store/verify [post]
func (h *SiteHandler) VerifyStore(c *gin.Context) {
	var req model.StoreCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.VerifyStore(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		h.siteError(c, err)
		return
	}

	success(c, http.StatusOK, nil)
}

// AttachStore handles PUT /api/v1/sites/:id/store
// @Summary Attach a store to a site
// @Description Verifies the store and records its credentials on the site
// @Tags sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param request body model.StoreCredentialsRequest true "Store credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/sites/{id}/store [put]
func (h *SiteHandler) AttachStore(c *gin.Context) {
	siteID := c.Param("id")
	c.Set(middleware.SiteIDKey, siteID)

	var req model.StoreCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.AttachStore(c.Request.Context(), siteID, &req); err != nil {
		_ = c.Error(err)
		h.siteError(c, err)
		return
	}

	success(c, http.StatusOK, nil)
}

// Delete handles DELETE /api/v1/sites/:id
// @Summary Delete a site
// @Description Removes the site and its events. The event purge is asynchronous when queued.
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} Response{data=model.DeleteSiteResponse}
// @Success 202 {object} Response{data=model.DeleteSiteResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/sites/{id} [delete]
func (h *SiteHandler) Delete(c *gin.Context) {
	siteID := c.Param("id")
	c.Set(middleware.SiteIDKey, siteID)

	resp, err := h.service.Delete(c.Request.Context(), siteID)
	if err != nil {
		_ = c.Error(err)
		h.siteError(c, err)
		return
	}

	status := http.StatusOK
	if resp.PurgeQueued {
		status = http.StatusAccepted
	}
	success(c, status, resp)
}

func (h *SiteHandler) siteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, "Site not found")
	case errors.Is(err, service.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrSchemaMissing):
		fail(c, http.StatusBadGateway, "Store is missing the events table")
	case errors.Is(err, store.ErrUnsupportedDriver):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrRead), errors.Is(err, store.ErrWrite):
		fail(c, http.StatusBadGateway, "Store is unreachable or rejected the credentials")
	default:
		fail(c, http.StatusInternalServerError, "Internal error")
	}
}
