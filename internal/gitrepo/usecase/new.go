package usecase

import (
	"buildhook/internal/gitrepo"
	"buildhook/internal/gitrepo/repository"
	"buildhook/pkg/log"
)

// generatedSecretBytes is the entropy of secrets minted on registration and rotation.
const generatedSecretBytes = 32

const minSecretLength = 16

type implUseCase struct {
	repo   repository.Repository
	l      log.Logger
	pepper []byte
}

var _ gitrepo.UseCase = (*implUseCase)(nil)

// New creates the repository UseCase. pepper keys the stored webhook-secret HMACs.
func New(repo repository.Repository, l log.Logger, pepper []byte) *implUseCase {
	return &implUseCase{
		repo:   repo,
		l:      l,
		pepper: pepper,
	}
}
