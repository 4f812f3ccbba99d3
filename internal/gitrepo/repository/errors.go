package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert repository")
	ErrFailedToGet    = errors.New("failed to get repository")
	ErrFailedToList   = errors.New("failed to list repositories")
	ErrFailedToUpdate = errors.New("failed to update repository")
	ErrDuplicate      = errors.New("repository already exists")
)
