package usecase

import (
	"context"

	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/webhook"
	"buildhook/pkg/encrypter"
)

// VerifyGitHub prefers the active App's secret and falls back to the
// configured global secret. Every failure is reported as ErrVerificationFailed.
func (uc *implUseCase) VerifyGitHub(ctx context.Context, signature string, body []byte) error {
	secret, err := uc.secrets.GitHubWebhookSecret(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.VerifyGitHub: loading app secret: %v", err)
		return webhook.ErrVerificationFailed
	}
	if len(secret) == 0 {
		secret = []byte(uc.cfg.GitHubSecret)
	}
	if len(secret) == 0 {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitHub: no GitHub webhook secret configured")
		return webhook.ErrVerificationFailed
	}

	if !encrypter.VerifyHMACSignature(secret, signature, body) {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitHub: signature mismatch")
		return webhook.ErrVerificationFailed
	}
	return nil
}

// VerifyGitLab resolves the target project from the payload and checks the
// presented token against that repository's stored HMAC.
func (uc *implUseCase) VerifyGitLab(ctx context.Context, token string, body []byte) (model.Repository, error) {
	if token == "" {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitLab: missing token")
		return model.Repository{}, webhook.ErrVerificationFailed
	}

	ev, err := webhook.Parse(model.ProviderGitLab, "", body)
	if err != nil {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitLab: %v", err)
		return model.Repository{}, webhook.ErrVerificationFailed
	}

	target, err := uc.repos.Resolve(ctx, gitrepo.ResolveInput{
		Provider:       model.ProviderGitLab,
		ProviderRepoID: ev.ProviderRepoID,
		Owner:          ev.Owner,
		Name:           ev.Name,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitLab: resolving %s: %v", ev.FullName(), err)
		return model.Repository{}, webhook.ErrVerificationFailed
	}

	if !encrypter.VerifyTokenHMAC(uc.cfg.Pepper, target.WebhookSecretHMAC, token) {
		uc.l.Warnf(ctx, "internal.webhook.usecase.VerifyGitLab: token mismatch")
		return model.Repository{}, webhook.ErrVerificationFailed
	}
	return target, nil
}
