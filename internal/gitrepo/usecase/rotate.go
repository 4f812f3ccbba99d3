package usecase

import (
	"context"

	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/pkg/encrypter"
)

// RotateSecret replaces the webhook secret. The old secret stops verifying immediately.
func (uc *implUseCase) RotateSecret(ctx context.Context, id string) (gitrepo.RotateSecretOutput, error) {
	if _, err := uc.Detail(ctx, id); err != nil {
		return gitrepo.RotateSecretOutput{}, err
	}

	secret, err := encrypter.GenerateSecret(generatedSecretBytes)
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.RotateSecret: generate: %v", err)
		return gitrepo.RotateSecretOutput{}, err
	}

	rec, err := uc.repo.UpdateSecretHMAC(ctx, id, encrypter.HMACHex(uc.pepper, []byte(secret)))
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.RotateSecret: %v", err)
		return gitrepo.RotateSecretOutput{}, err
	}
	if rec.ID == "" {
		return gitrepo.RotateSecretOutput{}, gitrepo.ErrRepositoryNotFound
	}

	uc.l.Infof(ctx, "internal.gitrepo.usecase.RotateSecret: rotated webhook secret for %s", rec.FullName())
	return gitrepo.RotateSecretOutput{Repository: rec, WebhookSecret: secret, VerifiesIntake: secretVerifiesIntake(rec)}, nil
}

// Deactivate soft-disables a repository. Rows are never deleted while builds reference them.
func (uc *implUseCase) Deactivate(ctx context.Context, id string) (model.Repository, error) {
	rec, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.Deactivate: %v", err)
		return model.Repository{}, err
	}
	if rec.ID == "" {
		return model.Repository{}, gitrepo.ErrRepositoryNotFound
	}
	return rec, nil
}
