package repository

import "buildhook/internal/model"

type CreateOptions struct {
	RepositoryID   string
	WebhookEventID *string
	CommitSHA      string
	Branch         string
	TriggerType    model.TriggerType
	WorkflowName   string
	ConfigSource   string
}

type ListOptions struct {
	RepositoryID string
	Status       model.BuildStatus
	Limit        int
	Offset       int
}

type UpdateStatusOptions struct {
	ID           string
	From         model.BuildStatus
	To           model.BuildStatus
	ErrorMessage *string
}
