package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	t.Run("logs request information", func(t *testing.T) {
		router := gin.New()
		router.Use(Logger())
		router.GET("/api/v1/sites/:id/metrics", func(c *gin.Context) {
			c.Set(SiteIDKey, c.Param("id"))
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/sites/site-1/metrics?period=7d", nil)
		req.Header.Set("User-Agent", "test-agent")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs client error", func(t *testing.T) {
		router := gin.New()
		router.Use(Logger())
		router.POST("/api/analytics", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/analytics", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logs request with error status", func(t *testing.T) {
		router := gin.New()
		router.Use(Logger())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("skipped paths still served", func(t *testing.T) {
		router := gin.New()
		router.Use(Logger("/health"))
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
