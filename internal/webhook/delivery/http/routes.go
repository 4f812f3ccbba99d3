package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/internal/middleware"
)

// RegisterIntakeRoutes maps the provider-facing /webhooks routes. They
// authenticate by signature or token, not by admin key.
func RegisterIntakeRoutes(r gin.IRouter, h *handler) {
	hooks := r.Group("/webhooks")
	{
		hooks.POST("/github", h.GitHub)
		hooks.POST("/gitlab", h.GitLab)
	}
}

// RegisterRoutes maps /webhook-events query routes.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	events := rg.Group("/webhook-events", mw.Auth())
	{
		events.GET("", h.List)
		events.GET("/:id", h.Detail)
	}
}
