package usecase

import (
	"context"

	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/webhook"
	"buildhook/internal/webhook/repository"
	"buildhook/pkg/log"
)

// RepositoryResolver finds the registered repository a GitLab delivery targets.
type RepositoryResolver interface {
	Resolve(ctx context.Context, input gitrepo.ResolveInput) (model.Repository, error)
}

type implUseCase struct {
	repo     repository.Repository
	secrets  webhook.SecretSource
	repos    RepositoryResolver
	enqueuer webhook.Enqueuer
	cfg      webhook.Config
	l        log.Logger
}

var _ webhook.UseCase = (*implUseCase)(nil)

// New creates the webhook UseCase.
func New(
	repo repository.Repository,
	secrets webhook.SecretSource,
	repos RepositoryResolver,
	enqueuer webhook.Enqueuer,
	cfg webhook.Config,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		repo:     repo,
		secrets:  secrets,
		repos:    repos,
		enqueuer: enqueuer,
		cfg:      cfg,
		l:        l,
	}
}
