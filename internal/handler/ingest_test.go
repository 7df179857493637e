package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"oneshot/internal/mocks"
	"oneshot/internal/model"
	"oneshot/internal/service"
	"oneshot/internal/store"
	"oneshot/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIngestRouter(h *IngestHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.BearerToken())
	router.POST("/api/analytics", h.Ingest)
	router.OPTIONS("/api/analytics", h.Preflight)
	return router
}

func ingestBody(t *testing.T) *bytes.Buffer {
	body, err := json.Marshal(map[string]interface{}{
		"site_id":    "site-1",
		"event_type": "pageview",
		"page_url":   "https://blog.example.com/x",
		"referrer":   "https://www.google.com/",
		"user_agent": "Mozilla/5.0",
		"session_id": "sess-1",
		"browser":    "spoofed",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestIngestHandler_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockIngestServiceInterface(ctrl)
	router := newIngestRouter(NewIngestHandler(mockService))

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().Ingest(gomock.Any(), "key-123", gomock.Any()).DoAndReturn(
			func(_ interface{}, _ string, req *model.IngestRequest) (*model.IngestAck, error) {
				assert.Equal(t, "site-1", req.SiteID)
				assert.Equal(t, "sess-1", req.SessionID)
				return &model.IngestAck{Success: true, EventID: "evt-1"}, nil
			})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/analytics", ingestBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer key-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var ack model.IngestAck
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
		assert.True(t, ack.Success)
		assert.Equal(t, "evt-1", ack.EventID)
	})

	t.Run("missing bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/analytics", ingestBody(t))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/analytics", ingestBody(t))
		req.Header.Set("Authorization", "Token key-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/analytics", bytes.NewBufferString("{invalid json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer key-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "Invalid request")
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("OPTIONS", "/api/analytics", nil)
		req.Header.Set("Origin", "https://blog.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestIngestHandler_Ingest_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing credential", service.ErrMissingCredential, http.StatusUnauthorized},
		{"unknown site", service.ErrUnknownSite, http.StatusNotFound},
		{"not configured", service.ErrTenantNotConfigured, http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: page_url is required", service.ErrValidation), http.StatusBadRequest},
		{"store failure", fmt.Errorf("%w: connection refused", store.ErrWrite), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockIngestServiceInterface(ctrl)
			mockService.EXPECT().Ingest(gomock.Any(), "key-123", gomock.Any()).Return(nil, tt.err)
			router := newIngestRouter(NewIngestHandler(mockService))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/analytics", ingestBody(t))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer key-123")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.NotContains(t, resp.Message, "connection refused")
		})
	}
}
