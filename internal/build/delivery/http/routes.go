package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/internal/middleware"
)

// RegisterRoutes maps /builds routes. All of them require the admin key.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	builds := rg.Group("/builds", mw.Auth())
	{
		builds.POST("", h.Trigger)
		builds.GET("", h.List)
		builds.GET("/:id", h.Detail)
		builds.POST("/:id/cancel", h.Cancel)
		builds.PATCH("/:id/status", h.UpdateStatus)
		builds.POST("/:id/credentials", h.Credentials)
	}
}
