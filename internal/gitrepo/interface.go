package gitrepo

import (
	"context"

	"buildhook/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (RegisterOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (model.Repository, error)
	RotateSecret(ctx context.Context, id string) (RotateSecretOutput, error)
	Deactivate(ctx context.Context, id string) (model.Repository, error)

	// Resolve finds the repository an event targets: by id, then provider
	// numeric id, then owner/name. Returns ErrRepositoryNotFound on a miss.
	Resolve(ctx context.Context, input ResolveInput) (model.Repository, error)
}
