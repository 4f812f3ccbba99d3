package usecase

import (
	"context"
	"errors"
	"fmt"

	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/pkg/github"
)

const remediationGitHubApp = "configure the GitHub App via PUT /api/v1/credentials/github-app"

// githubToken mints an installation token for the repository's installation.
func (uc *implUseCase) githubToken(ctx context.Context, repo model.Repository) (*token.Token, error) {
	installationID := *repo.GitHubInstallationID

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(installationID); ok && cached.ExpiresAt.After(uc.now().Add(installationTokenMinTTL)) {
			expires := cached.ExpiresAt
			return &token.Token{Provider: model.ProviderGitHub, Value: cached.Token, ExpiresAt: &expires}, nil
		}
	}

	app, err := uc.creds.GetActiveGitHubApp(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.githubToken: %v", err)
		return nil, err
	}
	if app.ID == "" {
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitHub,
			Reason:      "no active GitHub App credential",
			Remediation: remediationGitHubApp,
		}
	}

	key, err := uc.enc.Decrypt(app.PrivateKeyCiphertext, app.PrivateKeyNonce)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.githubToken: App %d private key undecryptable", app.AppID)
		return nil, token.ErrCredentialCorrupt
	}

	minted, err := uc.github.MintInstallationToken(ctx, github.AppCredentials{AppID: app.AppID, PrivateKeyPEM: key}, installationID)
	switch {
	case err == nil:
	case errors.Is(err, github.ErrInvalidPrivateKey):
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitHub,
			Reason:      "stored App private key is not a valid RSA key",
			Remediation: remediationGitHubApp,
		}
	case errors.Is(err, github.ErrRejected):
		uc.l.Warnf(ctx, "internal.token.usecase.githubToken: installation %d for %s: %v", installationID, repo.FullName(), err)
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitHub,
			Reason:      fmt.Sprintf("GitHub refused a token for installation %d", installationID),
			Remediation: "check the App is still installed on the repository's account",
		}
	default:
		uc.l.Warnf(ctx, "internal.token.usecase.githubToken: %v", err)
		return nil, fmt.Errorf("%w: %v", token.ErrProviderUnavailable, err)
	}

	if uc.cache != nil {
		uc.cache.Add(installationID, minted)
	}

	expires := minted.ExpiresAt
	return &token.Token{Provider: model.ProviderGitHub, Value: minted.Token, ExpiresAt: &expires}, nil
}
