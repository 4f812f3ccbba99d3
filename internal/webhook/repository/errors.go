package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert webhook event")
	ErrFailedToGet    = errors.New("failed to get webhook event")
	ErrFailedToList   = errors.New("failed to list webhook events")
	ErrFailedToUpdate = errors.New("failed to update webhook event")
	ErrDuplicate      = errors.New("webhook delivery already stored")
)
