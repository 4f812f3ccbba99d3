package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	credRepo "buildhook/internal/credential/repository"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/pkg/gitlab"
)

const (
	persistTimeout = 10 * time.Second

	remediationEnableProject = "enable the project via POST /api/v1/credentials/gitlab/{id}/projects"
	remediationReconnect     = "reconnect the GitLab account via POST /api/v1/credentials/gitlab"
)

// gitlabToken returns the stored access token, refreshing it first when it
// expires within the margin. Refreshes of one credential are serialized.
func (uc *implUseCase) gitlabToken(ctx context.Context, repo model.Repository) (*token.Token, error) {
	link, err := uc.creds.GetEnabledProjectByRepository(ctx, repo.ID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.gitlabToken: %v", err)
		return nil, err
	}
	if link.ID == "" {
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitLab,
			Reason:      fmt.Sprintf("project %s is not enabled for any GitLab credential", repo.FullName()),
			Remediation: remediationEnableProject,
		}
	}

	mu := uc.credentialLock(link.CredentialID)
	mu.Lock()
	defer mu.Unlock()

	// Read inside the lock so a refresh that just finished is seen.
	cred, err := uc.creds.GetGitLabCredential(ctx, link.CredentialID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.gitlabToken: %v", err)
		return nil, err
	}
	if cred.ID == "" {
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitLab,
			Reason:      "the linked GitLab credential no longer exists",
			Remediation: remediationReconnect,
		}
	}

	if !uc.expiring(cred.ExpiresAt) {
		return uc.storedAccessToken(ctx, cred)
	}
	return uc.refresh(ctx, cred)
}

func (uc *implUseCase) expiring(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return !expiresAt.After(uc.now().Add(uc.margin))
}

func (uc *implUseCase) storedAccessToken(ctx context.Context, cred model.GitLabCredential) (*token.Token, error) {
	access, err := uc.enc.Decrypt(cred.AccessTokenCiphertext, cred.AccessTokenNonce)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.storedAccessToken: credential %s undecryptable", cred.ID)
		return nil, token.ErrCredentialCorrupt
	}
	return &token.Token{Provider: model.ProviderGitLab, Value: string(access), ExpiresAt: cred.ExpiresAt}, nil
}

func (uc *implUseCase) refresh(ctx context.Context, cred model.GitLabCredential) (*token.Token, error) {
	if cred.RefreshTokenCiphertext == nil || cred.RefreshTokenNonce == nil {
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitLab,
			Reason:      "access token expired and no refresh token is stored",
			Remediation: remediationReconnect,
		}
	}

	app, err := uc.creds.GetGitLabApp(ctx, cred.InstanceURL)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.refresh: %v", err)
		return nil, err
	}
	if app.ID == "" {
		return nil, &token.ConfigError{
			Provider:    model.ProviderGitLab,
			Reason:      "no OAuth application configured for " + cred.InstanceURL,
			Remediation: "configure it via PUT /api/v1/credentials/gitlab-app",
		}
	}

	refreshToken, err := uc.enc.Decrypt(*cred.RefreshTokenCiphertext, *cred.RefreshTokenNonce)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.refresh: credential %s refresh token undecryptable", cred.ID)
		return nil, token.ErrCredentialCorrupt
	}
	clientSecret, err := uc.enc.Decrypt(app.ClientSecretCiphertext, app.ClientSecretNonce)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.refresh: OAuth app %s secret undecryptable", app.ID)
		return nil, token.ErrCredentialCorrupt
	}

	pair, err := uc.gitlab.RefreshToken(ctx, gitlab.RefreshRequest{
		InstanceURL:  cred.InstanceURL,
		ClientID:     app.ClientID,
		ClientSecret: string(clientSecret),
		RefreshToken: string(refreshToken),
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.token.usecase.refresh: credential %s: %v", cred.ID, err)
		if errors.Is(err, gitlab.ErrGrantRevoked) {
			return nil, fmt.Errorf("%w: %s", token.ErrGrantRevoked, remediationReconnect)
		}
		return nil, fmt.Errorf("%w: %v", token.ErrProviderUnavailable, err)
	}

	// GitLab has rotated the refresh token, so the old one is dead. The new
	// pair must be stored even if the caller gives up now.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	opt := credRepo.UpdateGitLabTokensOptions{
		ID:                     cred.ID,
		RefreshTokenCiphertext: cred.RefreshTokenCiphertext,
		RefreshTokenNonce:      cred.RefreshTokenNonce,
		ExpiresAt:              pair.ExpiresAt,
		PrevExpiresAt:          cred.ExpiresAt,
	}
	opt.AccessTokenCiphertext, opt.AccessTokenNonce, err = uc.enc.Encrypt([]byte(pair.AccessToken))
	if err != nil {
		return nil, err
	}
	if pair.RefreshToken != "" {
		ct, nonce, err := uc.enc.Encrypt([]byte(pair.RefreshToken))
		if err != nil {
			return nil, err
		}
		opt.RefreshTokenCiphertext, opt.RefreshTokenNonce = &ct, &nonce
	}

	updated, err := uc.creds.UpdateGitLabTokens(persistCtx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "internal.token.usecase.refresh: persist: %v", err)
		return nil, err
	}
	if !updated {
		// Another process refreshed first. Its pair is the one now stored and valid.
		uc.l.Infof(ctx, "internal.token.usecase.refresh: credential %s refreshed concurrently, using stored pair", cred.ID)
		current, err := uc.creds.GetGitLabCredential(persistCtx, cred.ID)
		if err != nil {
			return nil, err
		}
		if current.ID == "" || uc.expiring(current.ExpiresAt) {
			return nil, fmt.Errorf("%w: concurrent refresh left no usable token", token.ErrProviderUnavailable)
		}
		return uc.storedAccessToken(ctx, current)
	}

	uc.l.Infof(ctx, "internal.token.usecase.refresh: refreshed GitLab credential %s", cred.ID)
	return &token.Token{Provider: model.ProviderGitLab, Value: pair.AccessToken, ExpiresAt: pair.ExpiresAt}, nil
}
