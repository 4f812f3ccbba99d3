package usecase

import (
	"context"

	"buildhook/internal/credential"
	"buildhook/internal/credential/repository"
	"buildhook/internal/model"
	"buildhook/pkg/encrypter"
	"buildhook/pkg/log"
)

// RepositoryReader is the slice of the repository store EnableProject needs.
type RepositoryReader interface {
	Detail(ctx context.Context, id string) (model.Repository, error)
}

type implUseCase struct {
	repo  repository.Repository
	repos RepositoryReader
	enc   encrypter.Encrypter
	l     log.Logger
}

var _ credential.UseCase = (*implUseCase)(nil)

// New creates the credential UseCase. All secret material passes through enc before it is stored.
func New(repo repository.Repository, repos RepositoryReader, enc encrypter.Encrypter, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:  repo,
		repos: repos,
		enc:   enc,
		l:     l,
	}
}
