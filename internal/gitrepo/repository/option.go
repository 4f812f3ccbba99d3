package repository

import "buildhook/internal/model"

type CreateOptions struct {
	Provider             model.Provider
	Owner                string
	Name                 string
	CloneURL             string
	DefaultBranch        string
	GitHubRepoID         *int64
	GitHubInstallationID *int64
	GitLabProjectID      *int64
	WebhookSecretHMAC    string
}

// GetOneOptions filters are ANDed. Owner/Name match case-insensitively.
type GetOneOptions struct {
	ID              string
	Provider        model.Provider
	GitHubRepoID    int64
	GitLabProjectID int64
	Owner           string
	Name            string
}

type ListOptions struct {
	Provider   model.Provider
	ActiveOnly bool
	Limit      int
	Offset     int
}
