package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"buildhook/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "buildhook control plane"
	HealthVersion = "1.0.0"
	ServiceName   = "buildhook"

	readyPingTimeout = 2 * time.Second
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready when the database answers, along with the dispatch backlog.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Database unreachable"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.postgresDB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
		defer cancel()
		if err := srv.postgresDB.PingContext(ctx); err != nil {
			srv.l.Warnf(ctx, "internal.httpserver.readyCheck: database ping: %v", err)
			response.ServiceUnavailable(c, "database unreachable")
			return
		}
	}

	body := gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	}
	if srv.queue != nil {
		body["dispatch_queue"] = gin.H{
			"depth":    srv.queue.Len(),
			"capacity": srv.queue.Cap(),
		}
	}
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": ServiceName,
	})
}
