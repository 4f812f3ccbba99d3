package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert credential record")
	ErrFailedToGet    = errors.New("failed to get credential record")
	ErrFailedToList   = errors.New("failed to list credential records")
	ErrFailedToUpdate = errors.New("failed to update credential record")
	ErrFailedToDelete = errors.New("failed to delete credential record")
)
