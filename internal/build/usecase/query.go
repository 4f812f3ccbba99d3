package usecase

import (
	"context"

	"buildhook/internal/build"
	repo "buildhook/internal/build/repository"
	"buildhook/internal/model"
	"buildhook/internal/token"
)

func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Build, error) {
	b, err := uc.repo.GetOne(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.Detail: %v", err)
		return model.Build{}, err
	}
	if b.ID == "" {
		return model.Build{}, build.ErrBuildNotFound
	}
	return b, nil
}

func (uc *implUseCase) List(ctx context.Context, input build.ListInput) (build.ListOutput, error) {
	builds, total, err := uc.repo.List(ctx, repo.ListOptions{
		RepositoryID: input.RepositoryID,
		Status:       input.Status,
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.List: %v", err)
		return build.ListOutput{}, err
	}
	return build.ListOutput{Builds: builds, Total: total, Limit: input.Limit, Offset: input.Offset}, nil
}

func (uc *implUseCase) Credentials(ctx context.Context, id string) (*token.Token, error) {
	b, err := uc.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, build.ErrBuildFinished
	}

	target, err := uc.repos.Detail(ctx, b.RepositoryID)
	if err != nil {
		return nil, err
	}
	return uc.tokens.GetRepositoryAuthToken(ctx, target)
}
