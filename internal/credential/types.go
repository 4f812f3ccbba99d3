package credential

import "time"

type SetGitHubAppInput struct {
	AppID         int64
	PrivateKeyPEM string
	WebhookSecret string
}

type AddInstallationInput struct {
	InstallationID int64
	AccountLogin   string
}

type SetGitLabAppInput struct {
	InstanceURL  string
	ClientID     string
	ClientSecret string
}

type ConnectGitLabInput struct {
	InstanceURL     string
	AccountUsername string
	AccessToken     string
	RefreshToken    string
	ExpiresAt       *time.Time
}

type EnableProjectInput struct {
	CredentialID string
	RepositoryID string
	ProjectID    int64
}
