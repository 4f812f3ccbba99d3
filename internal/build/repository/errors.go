package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert build")
	ErrFailedToGet    = errors.New("failed to get build")
	ErrFailedToList   = errors.New("failed to list builds")
	ErrFailedToUpdate = errors.New("failed to update build")
)
