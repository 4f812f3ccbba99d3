package gitrepo

import "errors"

var (
	ErrRepositoryNotFound   = errors.New("repository not found")
	ErrDuplicateRepository  = errors.New("repository already registered")
	ErrInvalidInput         = errors.New("invalid repository input")
	ErrRepositoryInactive   = errors.New("repository is inactive")
	ErrWebhookSecretTooWeak = errors.New("webhook secret must be at least 16 characters")
)
