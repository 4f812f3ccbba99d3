package github

import (
	"context"
	"time"
)

// InstallationToken is a short-lived token scoped to one App installation.
type InstallationToken struct {
	Token     string
	ExpiresAt time.Time
}

// AppCredentials identifies a GitHub App and carries its PEM private key.
type AppCredentials struct {
	AppID         int64
	PrivateKeyPEM []byte
}

//go:generate mockery --name IGitHub
type IGitHub interface {
	MintInstallationToken(ctx context.Context, app AppCredentials, installationID int64) (InstallationToken, error)
}
