package http

import (
	"github.com/gin-gonic/gin"

	"buildhook/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	creds := rg.Group("/credentials", mw.Auth())
	{
		creds.PUT("/github-app", h.SetGitHubApp)
		creds.POST("/github-app/installations", h.AddInstallation)
		creds.GET("/github-app/installations", h.ListInstallations)

		creds.PUT("/gitlab-app", h.SetGitLabApp)
		creds.POST("/gitlab", h.ConnectGitLab)
		creds.DELETE("/gitlab/:id", h.DisconnectGitLab)
		creds.POST("/gitlab/:id/projects", h.EnableProject)
	}
}
