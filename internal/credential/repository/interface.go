package repository

import (
	"context"

	"buildhook/internal/model"
)

type Repository interface {
	GitHubRepository
	GitLabRepository
}

type GitHubRepository interface {
	// SetActiveGitHubApp deactivates every App credential and inserts opt as the active one, in one transaction.
	SetActiveGitHubApp(ctx context.Context, opt CreateGitHubAppOptions) (model.GitHubAppCredential, error)
	GetActiveGitHubApp(ctx context.Context) (model.GitHubAppCredential, error)
	UpsertInstallation(ctx context.Context, opt UpsertInstallationOptions) (model.GitHubInstallation, error)
	ListInstallations(ctx context.Context) ([]model.GitHubInstallation, error)
}

type GitLabRepository interface {
	UpsertGitLabApp(ctx context.Context, opt UpsertGitLabAppOptions) (model.GitLabOAuthApp, error)
	GetGitLabApp(ctx context.Context, instanceURL string) (model.GitLabOAuthApp, error)

	UpsertGitLabCredential(ctx context.Context, opt UpsertGitLabCredentialOptions) (model.GitLabCredential, error)
	GetGitLabCredential(ctx context.Context, id string) (model.GitLabCredential, error)
	// DeleteGitLabCredential removes the credential and its enabled-project links. Returns false when nothing was deleted.
	DeleteGitLabCredential(ctx context.Context, id string) (bool, error)
	// UpdateGitLabTokens replaces the token fields only if expires_at still equals opt.PrevExpiresAt.
	// Returns false when another writer got there first.
	UpdateGitLabTokens(ctx context.Context, opt UpdateGitLabTokensOptions) (bool, error)

	UpsertEnabledProject(ctx context.Context, opt UpsertEnabledProjectOptions) (model.GitLabEnabledProject, error)
	GetEnabledProjectByRepository(ctx context.Context, repositoryID string) (model.GitLabEnabledProject, error)
}
