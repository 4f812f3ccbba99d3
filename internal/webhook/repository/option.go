package repository

import "buildhook/internal/model"

type CreateOptions struct {
	RepositoryID  *string
	Provider      model.Provider
	EventType     string
	DeliveryID    string
	Payload       []byte
	PayloadDigest string
}

type ListOptions struct {
	Provider     model.Provider
	RepositoryID string
	Processed    *bool
	Limit        int
	Offset       int
}

type MarkProcessedOptions struct {
	ID string
	// RepositoryID is recorded when dispatch resolved a target the event did not carry.
	RepositoryID *string
	ErrorMessage *string
}
