package gitlab

import (
	"context"
	"time"
)

// RefreshRequest carries what the OAuth refresh-token grant needs.
type RefreshRequest struct {
	InstanceURL  string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TokenPair is the result of a refresh. RefreshToken is empty when the
// instance did not rotate it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

//go:generate mockery --name IGitLab
type IGitLab interface {
	RefreshToken(ctx context.Context, req RefreshRequest) (TokenPair, error)
}
