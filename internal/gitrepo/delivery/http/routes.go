package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/internal/middleware"
)

// RegisterRoutes maps /repositories routes. All of them require the admin key.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	repos := rg.Group("/repositories", mw.Auth())
	{
		repos.POST("", h.Register)
		repos.GET("", h.List)
		repos.GET("/:id", h.Detail)
		repos.POST("/:id/rotate-secret", h.RotateSecret)
		repos.POST("/:id/deactivate", h.Deactivate)
	}
}
