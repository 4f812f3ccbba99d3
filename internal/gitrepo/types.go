package gitrepo

import "buildhook/internal/model"

type RegisterInput struct {
	Provider      model.Provider
	Owner         string
	Name          string
	CloneURL      string
	DefaultBranch string

	GitHubRepoID         *int64
	GitHubInstallationID *int64
	GitLabProjectID      *int64

	// WebhookSecret is optional; one is generated when empty.
	WebhookSecret string
}

// RegisterOutput carries the plaintext webhook secret. It is shown once and never stored.
// VerifiesIntake is false for GitHub, whose deliveries are checked against the
// App webhook secret (or the global one) rather than a per-repository secret.
type RegisterOutput struct {
	Repository     model.Repository
	WebhookSecret  string
	VerifiesIntake bool
}

type ListInput struct {
	Provider   model.Provider
	ActiveOnly bool
	Limit      int
	Offset     int
}

type ListOutput struct {
	Repositories []model.Repository
	Total        int
	Limit        int
	Offset       int
}

type RotateSecretOutput struct {
	Repository     model.Repository
	WebhookSecret  string
	VerifiesIntake bool
}

type ResolveInput struct {
	ID             string
	Provider       model.Provider
	ProviderRepoID int64
	Owner          string
	Name           string
}
