package http

import (
	"time"

	"buildhook/internal/credential"
	"buildhook/internal/model"
)

// --- Request DTOs ---

type setGitHubAppReq struct {
	AppID         int64  `json:"app_id"         binding:"required,gt=0"`
	PrivateKey    string `json:"private_key"    binding:"required"`
	WebhookSecret string `json:"webhook_secret"`
}

func (r setGitHubAppReq) toInput() credential.SetGitHubAppInput {
	return credential.SetGitHubAppInput{AppID: r.AppID, PrivateKeyPEM: r.PrivateKey, WebhookSecret: r.WebhookSecret}
}

type addInstallationReq struct {
	InstallationID int64  `json:"installation_id" binding:"required,gt=0"`
	AccountLogin   string `json:"account_login"`
}

type setGitLabAppReq struct {
	InstanceURL  string `json:"instance_url"`
	ClientID     string `json:"client_id"     binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type connectGitLabReq struct {
	InstanceURL     string     `json:"instance_url"`
	AccountUsername string     `json:"account_username" binding:"required"`
	AccessToken     string     `json:"access_token"     binding:"required"`
	RefreshToken    string     `json:"refresh_token"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

func (r connectGitLabReq) toInput() credential.ConnectGitLabInput {
	return credential.ConnectGitLabInput{
		InstanceURL:     r.InstanceURL,
		AccountUsername: r.AccountUsername,
		AccessToken:     r.AccessToken,
		RefreshToken:    r.RefreshToken,
		ExpiresAt:       r.ExpiresAt,
	}
}

type enableProjectReq struct {
	RepositoryID string `json:"repository_id" binding:"required"`
	ProjectID    int64  `json:"project_id"    binding:"required,gt=0"`
}

// --- Response DTOs ---
// Secret material is never echoed back.

type githubAppResp struct {
	ID               string    `json:"id"`
	AppID            int64     `json:"app_id"`
	HasWebhookSecret bool      `json:"has_webhook_secret"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

func newGitHubAppResp(a model.GitHubAppCredential) githubAppResp {
	return githubAppResp{
		ID:               a.ID,
		AppID:            a.AppID,
		HasWebhookSecret: a.WebhookSecretCiphertext != nil,
		Active:           a.Active,
		CreatedAt:        a.CreatedAt,
	}
}

type installationResp struct {
	ID             string    `json:"id"`
	InstallationID int64     `json:"installation_id"`
	AccountLogin   string    `json:"account_login"`
	CreatedAt      time.Time `json:"created_at"`
}

func newInstallationResp(i model.GitHubInstallation) installationResp {
	return installationResp{ID: i.ID, InstallationID: i.InstallationID, AccountLogin: i.AccountLogin, CreatedAt: i.CreatedAt}
}

type gitlabAppResp struct {
	ID          string `json:"id"`
	InstanceURL string `json:"instance_url"`
	ClientID    string `json:"client_id"`
}

type gitlabCredentialResp struct {
	ID              string     `json:"id"`
	InstanceURL     string     `json:"instance_url"`
	AccountUsername string     `json:"account_username"`
	Refreshable     bool       `json:"refreshable"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

func newGitLabCredentialResp(c model.GitLabCredential) gitlabCredentialResp {
	return gitlabCredentialResp{
		ID:              c.ID,
		InstanceURL:     c.InstanceURL,
		AccountUsername: c.AccountUsername,
		Refreshable:     c.RefreshTokenCiphertext != nil,
		ExpiresAt:       c.ExpiresAt,
	}
}

type enabledProjectResp struct {
	ID           string `json:"id"`
	RepositoryID string `json:"repository_id"`
	CredentialID string `json:"credential_id"`
	ProjectID    int64  `json:"project_id"`
}
