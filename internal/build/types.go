package build

import "buildhook/internal/model"

type CreateInput struct {
	RepositoryID   string
	WebhookEventID *string
	CommitSHA      string
	Branch         string
	TriggerType    model.TriggerType
	WorkflowName   string
	ConfigSource   string
}

type TriggerInput struct {
	RepositoryID string
	Branch       string
	CommitSHA    string
	WorkflowName string
}

type ListInput struct {
	RepositoryID string
	Status       model.BuildStatus
	Limit        int
	Offset       int
}

type ListOutput struct {
	Builds []model.Build
	Total  int
	Limit  int
	Offset int
}

type UpdateStatusInput struct {
	ID           string
	Status       model.BuildStatus
	ErrorMessage string
}

type CancelOutput struct {
	Build model.Build
	// Signalled is true when a live execution handle received the signal.
	Signalled bool
	// NoOp is true when the build was already terminal.
	NoOp bool
}

type EventType string

const (
	EventBuildCreated   EventType = "build.created"
	EventBuildCancelled EventType = "build.cancelled"
)

type Event struct {
	Type  EventType
	Build model.Build
}
