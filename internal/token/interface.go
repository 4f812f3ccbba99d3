package token

import (
	"context"

	"buildhook/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// GetRepositoryAuthToken returns a token to act on repo, or nil when the
	// repository has no provider linkage and is treated as public.
	GetRepositoryAuthToken(ctx context.Context, repo model.Repository) (*Token, error)
}
