package model

import (
	"errors"
	"time"
)

var ErrInvalidLinkage = errors.New("repository linkage does not match its provider")

// Repository is a registered Git repository builds can be triggered for.
type Repository struct {
	ID            string
	Provider      Provider
	Owner         string
	Name          string
	CloneURL      string
	DefaultBranch string
	Active        bool

	// GitHub linkage.
	GitHubRepoID         *int64
	GitHubInstallationID *int64
	// GitLab linkage.
	GitLabProjectID *int64

	// WebhookSecretHMAC is HMAC(pepper, shared webhook secret). The plaintext is never stored.
	WebhookSecretHMAC string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// ValidateLinkage enforces that only the provider's own id slots are populated.
func (r Repository) ValidateLinkage() error {
	switch r.Provider {
	case ProviderGitHub:
		if r.GitLabProjectID != nil {
			return ErrInvalidLinkage
		}
	case ProviderGitLab:
		if r.GitHubRepoID != nil || r.GitHubInstallationID != nil {
			return ErrInvalidLinkage
		}
	default:
		return ErrInvalidLinkage
	}
	return nil
}

// HasLinkage reports whether provider credentials were recorded for the repository.
func (r Repository) HasLinkage() bool {
	switch r.Provider {
	case ProviderGitHub:
		return r.GitHubInstallationID != nil
	case ProviderGitLab:
		return r.GitLabProjectID != nil
	default:
		return false
	}
}
