package webhook

import "buildhook/internal/model"

type IngestInput struct {
	Provider   model.Provider
	DeliveryID string
	EventType  string
	Payload    []byte
	// RepositoryID is set when verification already resolved the target.
	RepositoryID *string
}

type IngestOutput struct {
	Event  model.WebhookEvent
	Parsed model.ParsedWebhookEvent
}

// Supported reports whether the event kind can ever produce a build.
func (o IngestOutput) Supported() bool {
	return o.Parsed.Kind != model.EventKindUnsupported
}

type ListInput struct {
	Provider     model.Provider
	RepositoryID string
	Processed    *bool
	Limit        int
	Offset       int
}

type ListOutput struct {
	Events []model.WebhookEvent
	Total  int
	Limit  int
	Offset int
}

type MarkProcessedInput struct {
	ID           string
	RepositoryID *string
	ErrorMessage string
}

// Config holds the intake limits and verification secrets.
type Config struct {
	MaxPayloadBytes int64
	// GitHubSecret is used when no GitHub App credential carries a webhook secret.
	GitHubSecret string
	// Pepper keys the HMAC stored in place of GitLab webhook tokens.
	Pepper []byte
}
