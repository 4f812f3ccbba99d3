package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"buildhook/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth requires "Authorization: Bearer <admin api key>".
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.adminAPIKey == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c)
			return
		}

		given := strings.TrimPrefix(header, bearerPrefix)
		if subtle.ConstantTimeCompare([]byte(given), []byte(m.adminAPIKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "internal.middleware.Auth: rejected admin request from %s", c.ClientIP())
			response.Unauthorized(c)
			return
		}

		c.Next()
	}
}
