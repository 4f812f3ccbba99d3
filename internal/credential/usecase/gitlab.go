package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"buildhook/internal/credential"
	repo "buildhook/internal/credential/repository"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
)

// SetGitLabApp stores (or replaces) the OAuth application for an instance.
func (uc *implUseCase) SetGitLabApp(ctx context.Context, input credential.SetGitLabAppInput) (model.GitLabOAuthApp, error) {
	instance := NormalizeInstanceURL(input.InstanceURL)
	if err := validateInstanceURL(instance); err != nil {
		return model.GitLabOAuthApp{}, err
	}
	if input.ClientID == "" || input.ClientSecret == "" {
		return model.GitLabOAuthApp{}, fmt.Errorf("%w: client_id and client_secret are required", credential.ErrInvalidInput)
	}

	ct, nonce, err := uc.enc.Encrypt([]byte(input.ClientSecret))
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.SetGitLabApp: encrypt: %v", err)
		return model.GitLabOAuthApp{}, err
	}

	rec, err := uc.repo.UpsertGitLabApp(ctx, repo.UpsertGitLabAppOptions{
		InstanceURL:            instance,
		ClientID:               input.ClientID,
		ClientSecretCiphertext: ct,
		ClientSecretNonce:      nonce,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.SetGitLabApp: %v", err)
		return model.GitLabOAuthApp{}, err
	}
	return rec, nil
}

// ConnectGitLab stores an account's token pair, each half under its own fresh nonce.
// Reconnecting the same account on the same instance replaces the stored pair.
func (uc *implUseCase) ConnectGitLab(ctx context.Context, input credential.ConnectGitLabInput) (model.GitLabCredential, error) {
	instance := NormalizeInstanceURL(input.InstanceURL)
	if err := validateInstanceURL(instance); err != nil {
		return model.GitLabCredential{}, err
	}
	if input.AccountUsername == "" || input.AccessToken == "" {
		return model.GitLabCredential{}, fmt.Errorf("%w: account_username and access_token are required", credential.ErrInvalidInput)
	}

	if input.RefreshToken != "" {
		app, err := uc.repo.GetGitLabApp(ctx, instance)
		if err != nil {
			uc.l.Errorf(ctx, "internal.credential.usecase.ConnectGitLab: %v", err)
			return model.GitLabCredential{}, err
		}
		if app.ID == "" {
			return model.GitLabCredential{}, credential.ErrGitLabAppNotConfigured
		}
	}

	accessCT, accessNonce, err := uc.enc.Encrypt([]byte(input.AccessToken))
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.ConnectGitLab: encrypt access: %v", err)
		return model.GitLabCredential{}, err
	}
	refreshCT, refreshNonce, err := uc.encryptOptional(input.RefreshToken)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.ConnectGitLab: encrypt refresh: %v", err)
		return model.GitLabCredential{}, err
	}

	rec, err := uc.repo.UpsertGitLabCredential(ctx, repo.UpsertGitLabCredentialOptions{
		InstanceURL:            instance,
		AccountUsername:        input.AccountUsername,
		AccessTokenCiphertext:  accessCT,
		AccessTokenNonce:       accessNonce,
		RefreshTokenCiphertext: refreshCT,
		RefreshTokenNonce:      refreshNonce,
		ExpiresAt:              input.ExpiresAt,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.ConnectGitLab: %v", err)
		return model.GitLabCredential{}, err
	}

	uc.l.Infof(ctx, "internal.credential.usecase.ConnectGitLab: connected %s on %s", rec.AccountUsername, rec.InstanceURL)
	return rec, nil
}

// DisconnectGitLab deletes the credential together with its enabled-project links.
func (uc *implUseCase) DisconnectGitLab(ctx context.Context, id string) error {
	deleted, err := uc.repo.DeleteGitLabCredential(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.DisconnectGitLab: %v", err)
		return err
	}
	if !deleted {
		return credential.ErrCredentialNotFound
	}
	uc.l.Infof(ctx, "internal.credential.usecase.DisconnectGitLab: removed credential %s", id)
	return nil
}

// EnableProject links a GitLab repository to the credential used to act on it.
func (uc *implUseCase) EnableProject(ctx context.Context, input credential.EnableProjectInput) (model.GitLabEnabledProject, error) {
	if input.ProjectID <= 0 {
		return model.GitLabEnabledProject{}, fmt.Errorf("%w: project_id must be positive", credential.ErrInvalidInput)
	}

	cred, err := uc.repo.GetGitLabCredential(ctx, input.CredentialID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.EnableProject: %v", err)
		return model.GitLabEnabledProject{}, err
	}
	if cred.ID == "" {
		return model.GitLabEnabledProject{}, credential.ErrCredentialNotFound
	}

	target, err := uc.repos.Detail(ctx, input.RepositoryID)
	if errors.Is(err, gitrepo.ErrRepositoryNotFound) {
		return model.GitLabEnabledProject{}, credential.ErrRepositoryMismatch
	}
	if err != nil {
		return model.GitLabEnabledProject{}, err
	}
	if target.Provider != model.ProviderGitLab {
		return model.GitLabEnabledProject{}, credential.ErrRepositoryMismatch
	}
	if target.GitLabProjectID != nil && *target.GitLabProjectID != input.ProjectID {
		return model.GitLabEnabledProject{}, credential.ErrRepositoryMismatch
	}

	rec, err := uc.repo.UpsertEnabledProject(ctx, repo.UpsertEnabledProjectOptions{
		RepositoryID: target.ID,
		CredentialID: cred.ID,
		ProjectID:    input.ProjectID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.credential.usecase.EnableProject: %v", err)
		return model.GitLabEnabledProject{}, err
	}
	return rec, nil
}

func validateInstanceURL(instance string) error {
	u, err := url.Parse(instance)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: instance_url must be an http(s) URL", credential.ErrInvalidInput)
	}
	return nil
}
