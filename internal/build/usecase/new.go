package usecase

import (
	"context"

	"buildhook/internal/build"
	"buildhook/internal/build/repository"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/pkg/log"
)

// RepositoryReader is the slice of the repository store builds need.
type RepositoryReader interface {
	Detail(ctx context.Context, id string) (model.Repository, error)
}

type implUseCase struct {
	repo      repository.Repository
	repos     RepositoryReader
	tokens    token.UseCase
	registry  *build.CancelRegistry
	publisher build.Publisher
	l         log.Logger
}

var _ build.UseCase = (*implUseCase)(nil)

// New creates the build UseCase. publisher may be nil when no broker is configured.
func New(
	repo repository.Repository,
	repos RepositoryReader,
	tokens token.UseCase,
	registry *build.CancelRegistry,
	publisher build.Publisher,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		repo:      repo,
		repos:     repos,
		tokens:    tokens,
		registry:  registry,
		publisher: publisher,
		l:         l,
	}
}

// publish is best effort: the stored build is the source of truth and executors
// can always fall back to polling the API.
func (uc *implUseCase) publish(ctx context.Context, typ build.EventType, b model.Build) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, build.Event{Type: typ, Build: b}); err != nil {
		uc.l.Warnf(ctx, "internal.build.usecase.publish: %s for build %s: %v", typ, b.ID, err)
	}
}
