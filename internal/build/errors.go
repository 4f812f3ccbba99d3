package build

import "errors"

var (
	ErrBuildNotFound      = errors.New("build not found")
	ErrInvalidInput       = errors.New("invalid build input")
	ErrInvalidTransition  = errors.New("invalid build status transition")
	ErrRepositoryInactive = errors.New("repository is inactive")
	ErrBuildFinished      = errors.New("build already finished")
)
