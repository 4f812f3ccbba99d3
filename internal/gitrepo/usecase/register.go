package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"buildhook/internal/gitrepo"
	repo "buildhook/internal/gitrepo/repository"
	"buildhook/internal/model"
	"buildhook/pkg/encrypter"
)

// Register stores a new repository. Only HMAC(pepper, secret) is persisted; the
// plaintext secret is returned to the caller once. The per-repository secret
// verifies GitLab deliveries only. GitHub intake is governed by the App secret.
func (uc *implUseCase) Register(ctx context.Context, input gitrepo.RegisterInput) (gitrepo.RegisterOutput, error) {
	input.Owner = strings.TrimSpace(input.Owner)
	input.Name = strings.TrimSpace(input.Name)
	if err := uc.validateRegister(input); err != nil {
		return gitrepo.RegisterOutput{}, err
	}

	secret, err := uc.secretOrGenerate(input.WebhookSecret)
	if err != nil {
		return gitrepo.RegisterOutput{}, err
	}

	defaultBranch := input.DefaultBranch
	if defaultBranch == "" {
		defaultBranch = "main"
	}

	rec, err := uc.repo.Create(ctx, repo.CreateOptions{
		Provider:             input.Provider,
		Owner:                input.Owner,
		Name:                 input.Name,
		CloneURL:             input.CloneURL,
		DefaultBranch:        defaultBranch,
		GitHubRepoID:         input.GitHubRepoID,
		GitHubInstallationID: input.GitHubInstallationID,
		GitLabProjectID:      input.GitLabProjectID,
		WebhookSecretHMAC:    encrypter.HMACHex(uc.pepper, []byte(secret)),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return gitrepo.RegisterOutput{}, gitrepo.ErrDuplicateRepository
	}
	if err != nil {
		uc.l.Errorf(ctx, "internal.gitrepo.usecase.Register: %v", err)
		return gitrepo.RegisterOutput{}, err
	}

	uc.l.Infof(ctx, "internal.gitrepo.usecase.Register: registered %s repository %s (%s)", rec.Provider, rec.FullName(), rec.ID)
	return gitrepo.RegisterOutput{Repository: rec, WebhookSecret: secret, VerifiesIntake: secretVerifiesIntake(rec)}, nil
}

func (uc *implUseCase) validateRegister(input gitrepo.RegisterInput) error {
	if _, err := model.ParseProvider(string(input.Provider)); err != nil {
		return fmt.Errorf("%w: %v", gitrepo.ErrInvalidInput, err)
	}
	if input.Owner == "" || input.Name == "" {
		return fmt.Errorf("%w: owner and name are required", gitrepo.ErrInvalidInput)
	}
	if input.CloneURL == "" {
		return fmt.Errorf("%w: clone_url is required", gitrepo.ErrInvalidInput)
	}

	candidate := model.Repository{
		Provider:             input.Provider,
		GitHubRepoID:         input.GitHubRepoID,
		GitHubInstallationID: input.GitHubInstallationID,
		GitLabProjectID:      input.GitLabProjectID,
	}
	if err := candidate.ValidateLinkage(); err != nil {
		return fmt.Errorf("%w: %v", gitrepo.ErrInvalidInput, err)
	}
	return nil
}

func (uc *implUseCase) secretOrGenerate(secret string) (string, error) {
	if secret == "" {
		return encrypter.GenerateSecret(generatedSecretBytes)
	}
	if len(secret) < minSecretLength {
		return "", gitrepo.ErrWebhookSecretTooWeak
	}
	return secret, nil
}

func secretVerifiesIntake(r model.Repository) bool {
	return r.Provider == model.ProviderGitLab
}
