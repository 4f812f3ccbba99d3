package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	buildHTTP "buildhook/internal/build/delivery/http"
	credentialHTTP "buildhook/internal/credential/delivery/http"
	gitrepoHTTP "buildhook/internal/gitrepo/delivery/http"
	"buildhook/internal/middleware"
	"buildhook/internal/model"
	webhookHTTP "buildhook/internal/webhook/delivery/http"
)

func (srv *HTTPServer) mapHandlers() {
	mw := middleware.New(srv.l, srv.adminAPIKey)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerDomainRoutes(mw)
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
	if srv.adminAPIKey == "" {
		srv.l.Warnf(ctx, "Admin API key not set, /api/v1 is unauthenticated")
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes wires each domain's handler onto the router.
//
// Provider intake lives outside /api/v1: it is authenticated by signature or
// token, not by the admin key.
func (srv *HTTPServer) registerDomainRoutes(mw middleware.Middleware) {
	ctx := context.Background()

	intake := webhookHTTP.New(srv.l, srv.webhookUC, srv.guard, srv.maxPayloadBytes)
	webhookHTTP.RegisterIntakeRoutes(srv.gin, intake)

	api := srv.gin.Group("/api/v1")
	gitrepoHTTP.RegisterRoutes(api, gitrepoHTTP.New(srv.l, srv.gitrepoUC), mw)
	credentialHTTP.RegisterRoutes(api, credentialHTTP.New(srv.l, srv.credentialUC), mw)
	buildHTTP.RegisterRoutes(api, buildHTTP.New(srv.l, srv.buildUC), mw)
	webhookHTTP.RegisterRoutes(api, intake, mw)

	srv.l.Infof(ctx, "Routes registered: /webhooks/{github,gitlab}, /api/v1/{repositories,credentials,builds,webhook-events}")
}
