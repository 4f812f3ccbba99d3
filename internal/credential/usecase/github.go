package usecase

import (
	"context"
	"encoding/pem"
	"fmt"
	"strings"

	"buildhook/internal/credential"
	repo "buildhook/internal/credential/repository"
	"buildhook/internal/model"
)

// SetGitHubApp stores a new App credential and makes it the only active one.
func (uc *implUseCase) SetGitHubApp(ctx context.Context, input credential.SetGitHubAppInput) (model.GitHubAppCredential, error) {
	if input.AppID <= 0 {
		return model.GitHubAppCredential{}, fmt.Errorf("%w: app_id must be positive", credential.ErrInvalidInput)
	}
	if block, _ := pem.Decode([]byte(strings.TrimSpace(input.PrivateKeyPEM))); block == nil {
		return model.GitHubAppCredential{}, fmt.Errorf("%w: private_key must be PEM encoded", credential.ErrInvalidInput)
	}

	keyCT, keyNonce, err := uc.enc.Encrypt([]byte(input.PrivateKeyPEM))
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.SetGitHubApp: encrypt key: %v", err)
		return model.GitHubAppCredential{}, err
	}
	secretCT, secretNonce, err := uc.encryptOptional(input.WebhookSecret)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.SetGitHubApp: encrypt secret: %v", err)
		return model.GitHubAppCredential{}, err
	}

	rec, err := uc.repo.SetActiveGitHubApp(ctx, repo.CreateGitHubAppOptions{
		AppID:                   input.AppID,
		PrivateKeyCiphertext:    keyCT,
		PrivateKeyNonce:         keyNonce,
		WebhookSecretCiphertext: secretCT,
		WebhookSecretNonce:      secretNonce,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.SetGitHubApp: %v", err)
		return model.GitHubAppCredential{}, err
	}

	uc.l.Infof(ctx, "internal.credential.usecase.SetGitHubApp: GitHub App %d is now active", rec.AppID)
	return rec, nil
}

// AddInstallation records an installation under the active App.
func (uc *implUseCase) AddInstallation(ctx context.Context, input credential.AddInstallationInput) (model.GitHubInstallation, error) {
	if input.InstallationID <= 0 {
		return model.GitHubInstallation{}, fmt.Errorf("%w: installation_id must be positive", credential.ErrInvalidInput)
	}

	app, err := uc.repo.GetActiveGitHubApp(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.AddInstallation: %v", err)
		return model.GitHubInstallation{}, err
	}
	if app.ID == "" {
		return model.GitHubInstallation{}, credential.ErrNoActiveGitHubApp
	}

	rec, err := uc.repo.UpsertInstallation(ctx, repo.UpsertInstallationOptions{
		InstallationID:  input.InstallationID,
		AccountLogin:    input.AccountLogin,
		AppCredentialID: app.ID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.AddInstallation: %v", err)
		return model.GitHubInstallation{}, err
	}
	return rec, nil
}

func (uc *implUseCase) ListInstallations(ctx context.Context) ([]model.GitHubInstallation, error) {
	recs, err := uc.repo.ListInstallations(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.ListInstallations: %v", err)
		return nil, err
	}
	return recs, nil
}

func (uc *implUseCase) GitHubWebhookSecret(ctx context.Context) ([]byte, error) {
	app, err := uc.repo.GetActiveGitHubApp(ctx)
	if err != nil {
		return nil, err
	}
	if app.ID == "" || app.WebhookSecretCiphertext == nil || app.WebhookSecretNonce == nil {
		return nil, nil
	}

	secret, err := uc.enc.Decrypt(*app.WebhookSecretCiphertext, *app.WebhookSecretNonce)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.GitHubWebhookSecret: App %d secret undecryptable", app.AppID)
		return nil, credential.ErrCredentialCorrupt
	}
	return secret, nil
}
