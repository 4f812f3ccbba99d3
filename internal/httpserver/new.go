package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"buildhook/internal/build"
	"buildhook/internal/credential"
	"buildhook/internal/gitrepo"
	"buildhook/internal/webhook"
	"buildhook/pkg/log"
)

// QueueStats reports dispatch backlog for the readiness check.
type QueueStats interface {
	Len() int
	Cap() int
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Infrastructure
	postgresDB *sql.DB
	queue      QueueStats

	// Security
	adminAPIKey     string
	guard           *webhook.Guard
	maxPayloadBytes int64

	// Domains
	gitrepoUC    gitrepo.UseCase
	credentialUC credential.UseCase
	buildUC      build.UseCase
	webhookUC    webhook.UseCase
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	PostgresDB *sql.DB
	Queue      QueueStats

	AdminAPIKey     string
	Guard           *webhook.Guard
	MaxPayloadBytes int64

	GitRepoUC    gitrepo.UseCase
	CredentialUC credential.UseCase
	BuildUC      build.UseCase
	WebhookUC    webhook.UseCase
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		postgresDB:      cfg.PostgresDB,
		queue:           cfg.Queue,
		adminAPIKey:     cfg.AdminAPIKey,
		guard:           cfg.Guard,
		maxPayloadBytes: cfg.MaxPayloadBytes,
		gitrepoUC:       cfg.GitRepoUC,
		credentialUC:    cfg.CredentialUC,
		buildUC:         cfg.BuildUC,
		webhookUC:       cfg.WebhookUC,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.guard == nil {
		return errors.New("webhook guard is required")
	}
	if srv.gitrepoUC == nil || srv.credentialUC == nil || srv.buildUC == nil || srv.webhookUC == nil {
		return errors.New("all domain use cases are required")
	}
	return nil
}
