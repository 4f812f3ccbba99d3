package repository

import "time"

type CreateGitHubAppOptions struct {
	AppID                   int64
	PrivateKeyCiphertext    string
	PrivateKeyNonce         string
	WebhookSecretCiphertext *string
	WebhookSecretNonce      *string
}

type UpsertInstallationOptions struct {
	InstallationID  int64
	AccountLogin    string
	AppCredentialID string
}

type UpsertGitLabAppOptions struct {
	InstanceURL            string
	ClientID               string
	ClientSecretCiphertext string
	ClientSecretNonce      string
}

type UpsertGitLabCredentialOptions struct {
	InstanceURL            string
	AccountUsername        string
	AccessTokenCiphertext  string
	AccessTokenNonce       string
	RefreshTokenCiphertext *string
	RefreshTokenNonce      *string
	ExpiresAt              *time.Time
}

type UpdateGitLabTokensOptions struct {
	ID                     string
	AccessTokenCiphertext  string
	AccessTokenNonce       string
	RefreshTokenCiphertext *string
	RefreshTokenNonce      *string
	ExpiresAt              *time.Time
	PrevExpiresAt          *time.Time
}

type UpsertEnabledProjectOptions struct {
	RepositoryID string
	CredentialID string
	ProjectID    int64
}
