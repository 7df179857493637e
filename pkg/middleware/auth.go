package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys shared by the middlewares and handlers
const (
	BearerTokenKey = "bearer_token"
	SiteIDKey      = "site_id"
)

// BearerToken extracts the token of an "Authorization: Bearer <token>" header
// into the context. A missing header is left for the handler to reject; a
// header with another scheme is rejected here.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Invalid authorization header format",
			})
			return
		}

		c.Set(BearerTokenKey, strings.TrimSpace(parts[1]))
		c.Next()
	}
}

// Bearer returns the token stored by BearerToken, or ""
func Bearer(c *gin.Context) string {
	return c.GetString(BearerTokenKey)
}
