package usecase

import (
	"context"

	"buildhook/internal/gitrepo"
	repo "buildhook/internal/gitrepo/repository"
	"buildhook/internal/model"
)

func (uc *implUseCase) List(ctx context.Context, input gitrepo.ListInput) (gitrepo.ListOutput, error) {
	recs, total, err := uc.repo.List(ctx, repo.ListOptions{
		Provider:   input.Provider,
		ActiveOnly: input.ActiveOnly,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.List: %v", err)
		return gitrepo.ListOutput{}, err
	}

	return gitrepo.ListOutput{
		Repositories: recs,
		Total:        total,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}, nil
}

func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Repository, error) {
	rec, err := uc.repo.GetOne(ctx, repo.GetOneOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.Detail: %v", err)
		return model.Repository{}, err
	}
	if rec.ID == "" {
		return model.Repository{}, gitrepo.ErrRepositoryNotFound
	}
	return rec, nil
}

func (uc *implUseCase) Resolve(ctx context.Context, input gitrepo.ResolveInput) (model.Repository, error) {
	if input.ID != "" {
		rec, err := uc.repo.GetOne(ctx, repo.GetOneOptions{ID: input.ID})
		if err != nil {
			return model.Repository{}, err
		}
		if rec.ID != "" {
			return rec, nil
		}
	}

	if input.ProviderRepoID != 0 {
		opt := repo.GetOneOptions{Provider: input.Provider}
		switch input.Provider {
		case model.ProviderGitHub:
			opt.GitHubRepoID = input.ProviderRepoID
		case model.ProviderGitLab:
			opt.GitLabProjectID = input.ProviderRepoID
		}
		if opt.GitHubRepoID != 0 || opt.GitLabProjectID != 0 {
			rec, err := uc.repo.GetOne(ctx, opt)
			if err != nil {
				return model.Repository{}, err
			}
			if rec.ID != "" {
				return rec, nil
			}
		}
	}

	if input.Owner != "" && input.Name != "" {
		rec, err := uc.repo.GetOne(ctx, repo.GetOneOptions{
			Provider: input.Provider,
			Owner:    input.Owner,
			Name:     input.Name,
		})
		if err != nil {
			return model.Repository{}, err
		}
		if rec.ID != "" {
			return rec, nil
		}
	}

	return model.Repository{}, gitrepo.ErrRepositoryNotFound
}
