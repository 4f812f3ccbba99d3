package usecase

import (
	"context"

	"buildhook/internal/model"
	"buildhook/internal/token"
)

func (uc *implUseCase) GetRepositoryAuthToken(ctx context.Context, repo model.Repository) (*token.Token, error) {
	switch repo.Provider {
	case model.ProviderGitHub:
		if repo.GitHubInstallationID == nil {
			return nil, nil
		}
		return uc.githubToken(ctx, repo)
	case model.ProviderGitLab:
		if repo.GitLabProjectID == nil {
			return nil, nil
		}
		return uc.gitlabToken(ctx, repo)
	default:
		return nil, &token.ConfigError{
			Provider:    repo.Provider,
			Reason:      "unknown provider",
			Remediation: "re-register the repository as github or gitlab",
		}
	}
}
