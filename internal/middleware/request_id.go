package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"buildhook/pkg/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request context so log lines carry request_id.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
