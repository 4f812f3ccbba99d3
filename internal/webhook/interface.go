package webhook

import (
	"context"

	"buildhook/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// VerifyGitHub checks X-Hub-Signature-256 against the active App webhook secret.
	VerifyGitHub(ctx context.Context, signature string, body []byte) error
	// VerifyGitLab checks X-Gitlab-Token against the target repository's stored digest
	// and returns the repository it resolved.
	VerifyGitLab(ctx context.Context, token string, body []byte) (model.Repository, error)
	// Ingest durably stores the event, then enqueues it for dispatch.
	Ingest(ctx context.Context, input IngestInput) (IngestOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (model.WebhookEvent, error)
	// MarkProcessed is called once per event by the dispatch worker.
	MarkProcessed(ctx context.Context, input MarkProcessedInput) error
	ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error)
}

// Enqueuer hands a stored event to the dispatch worker. It blocks while the queue is full.
type Enqueuer interface {
	Enqueue(ctx context.Context, job model.DispatchJob) error
}

// SecretSource yields the GitHub App webhook secret, or nil when none is stored.
type SecretSource interface {
	GitHubWebhookSecret(ctx context.Context) ([]byte, error)
}
