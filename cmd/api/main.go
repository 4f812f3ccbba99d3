package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"buildhook/config"
	"buildhook/config/postgre"
	_ "buildhook/docs" // Swagger docs
	"buildhook/internal/build"
	buildKafka "buildhook/internal/build/delivery/kafka"
	buildRepo "buildhook/internal/build/repository/postgre"
	buildUC "buildhook/internal/build/usecase"
	credentialRepo "buildhook/internal/credential/repository/postgre"
	credentialUC "buildhook/internal/credential/usecase"
	"buildhook/internal/dispatch"
	gitrepoRepo "buildhook/internal/gitrepo/repository/postgre"
	gitrepoUC "buildhook/internal/gitrepo/usecase"
	"buildhook/internal/httpserver"
	tokenUC "buildhook/internal/token/usecase"
	"buildhook/internal/webhook"
	webhookRepo "buildhook/internal/webhook/repository/postgre"
	webhookUC "buildhook/internal/webhook/usecase"
	"buildhook/pkg/encrypter"
	"buildhook/pkg/github"
	"buildhook/pkg/gitlab"
	"buildhook/pkg/kafka"
	"buildhook/pkg/log"
)

// @title       buildhook API
// @description Webhook intake, repository registry, provider credentials and build lifecycle for a CI/CD control plane.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey AdminKey
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting buildhook...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "buildhook stopped with error: ", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. Infrastructure
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer postgre.Disconnect(context.Background(), db)
	logger.Info(ctx, "Postgres connected")

	enc, err := encrypter.New(encrypter.DeriveKey(cfg.Security.EncryptionKey))
	if err != nil {
		return fmt.Errorf("encrypter: %w", err)
	}
	pepper := []byte(cfg.Security.WebhookPepper)

	var publisher build.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = buildKafka.New(producer, cfg.Kafka.Topic)
		logger.Infof(ctx, "Build events published to %s", cfg.Kafka.Topic)
	} else {
		logger.Info(ctx, "Kafka brokers not set, build events are not published")
	}

	// 4. Domains
	repos := gitrepoUC.New(gitrepoRepo.New(db, logger), logger, pepper)

	credStore := credentialRepo.New(db, logger)
	creds := credentialUC.New(credStore, repos, enc, logger)

	tokens := tokenUC.New(credStore, enc, github.NewClient(cfg.Token.GitHubAPIURL, nil), gitlab.NewClient(nil), logger, tokenUC.Config{
		RefreshMargin:  cfg.Token.GitLabRefreshMargin,
		GitHubCacheTTL: cfg.Token.GitHubCacheTTL,
	})

	builds := buildUC.New(buildRepo.New(db, logger), repos, tokens, build.NewCancelRegistry(), publisher, logger)

	queue := dispatch.NewQueue(cfg.Dispatch.QueueCapacity)
	events := webhookUC.New(webhookRepo.New(db, logger), creds, repos, queue, webhook.Config{
		MaxPayloadBytes: cfg.Webhook.MaxPayloadBytes,
		GitHubSecret:    cfg.Webhook.GitHubSecret,
		Pepper:          pepper,
	}, logger)

	guard, err := webhook.NewGuard(webhook.GuardConfig{
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})
	if err != nil {
		return err
	}

	// 5. Dispatch worker. Unprocessed events are recovered before intake opens.
	worker := dispatch.NewWorker(queue, events, repos, builds, tokens, dispatch.WorkerConfig{
		JobTimeout:    cfg.Dispatch.JobTimeout,
		SweepInterval: cfg.Dispatch.SweepInterval,
	}, logger)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(workerCtx)
	}()
	defer func() {
		stopWorker()
		<-workerDone
	}()

	if _, err := worker.Recover(ctx); err != nil {
		return fmt.Errorf("recovering unprocessed events: %w", err)
	}

	// 6. HTTP server
	srv, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		PostgresDB:      db,
		Queue:           queue,
		AdminAPIKey:     cfg.Security.AdminAPIKey,
		Guard:           guard,
		MaxPayloadBytes: cfg.Webhook.MaxPayloadBytes,
		GitRepoUC:       repos,
		CredentialUC:    creds,
		BuildUC:         builds,
		WebhookUC:       events,
	})
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	// 7. Run until SIGINT/SIGTERM. Jobs still queued at shutdown stay
	// unprocessed in Postgres and are recovered on the next start.
	return srv.Run(ctx)
}
