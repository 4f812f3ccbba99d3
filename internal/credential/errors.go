package credential

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid credential input")
	ErrNoActiveGitHubApp      = errors.New("no active GitHub App credential")
	ErrGitLabAppNotConfigured = errors.New("no GitLab OAuth application for this instance")
	ErrCredentialNotFound     = errors.New("gitlab credential not found")
	ErrRepositoryMismatch     = errors.New("repository is not a GitLab repository for this project")
	// ErrCredentialCorrupt hides which part of a decrypt failed.
	ErrCredentialCorrupt = errors.New("stored credential could not be decrypted")
)
