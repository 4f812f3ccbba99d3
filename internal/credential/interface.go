package credential

import (
	"context"

	"buildhook/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// GitHub App
	SetGitHubApp(ctx context.Context, input SetGitHubAppInput) (model.GitHubAppCredential, error)
	AddInstallation(ctx context.Context, input AddInstallationInput) (model.GitHubInstallation, error)
	ListInstallations(ctx context.Context) ([]model.GitHubInstallation, error)
	// GitHubWebhookSecret returns the active App's webhook secret, or nil when none is stored.
	GitHubWebhookSecret(ctx context.Context) ([]byte, error)

	// GitLab OAuth
	SetGitLabApp(ctx context.Context, input SetGitLabAppInput) (model.GitLabOAuthApp, error)
	ConnectGitLab(ctx context.Context, input ConnectGitLabInput) (model.GitLabCredential, error)
	DisconnectGitLab(ctx context.Context, id string) error
	EnableProject(ctx context.Context, input EnableProjectInput) (model.GitLabEnabledProject, error)
}
