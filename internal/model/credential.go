package model

import "time"

// GitHubAppCredential is a GitHub App registration. Only one is active at a time.
type GitHubAppCredential struct {
	ID                      string
	AppID                   int64
	PrivateKeyCiphertext    string
	PrivateKeyNonce         string
	WebhookSecretCiphertext *string
	WebhookSecretNonce      *string
	Active                  bool
	CreatedAt               time.Time
}

// GitHubInstallation records an App installation on an account.
type GitHubInstallation struct {
	ID              string
	InstallationID  int64
	AccountLogin    string
	AppCredentialID string
	CreatedAt       time.Time
}

// GitLabOAuthApp is the OAuth application registered on one GitLab instance.
type GitLabOAuthApp struct {
	ID                     string
	InstanceURL            string
	ClientID               string
	ClientSecretCiphertext string
	ClientSecretNonce      string
	CreatedAt              time.Time
}

// GitLabCredential is one connected GitLab account on one instance.
type GitLabCredential struct {
	ID                     string
	InstanceURL            string
	AccountUsername        string
	AccessTokenCiphertext  string
	AccessTokenNonce       string
	RefreshTokenCiphertext *string
	RefreshTokenNonce      *string
	ExpiresAt              *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// GitLabEnabledProject links a repository to the GitLab credential used to act on it.
type GitLabEnabledProject struct {
	ID           string
	RepositoryID string
	CredentialID string
	ProjectID    int64
	CreatedAt    time.Time
}
