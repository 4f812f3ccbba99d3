// Package dispatch drains the ingestion queue: it resolves each stored webhook
// event to a repository, applies the trigger policy and creates builds.
package dispatch

import (
	"context"

	"buildhook/internal/build"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/internal/webhook"
)

// EventStore is the part of the webhook event store the worker reads and marks.
type EventStore interface {
	Detail(ctx context.Context, id string) (model.WebhookEvent, error)
	MarkProcessed(ctx context.Context, input webhook.MarkProcessedInput) error
	ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error)
}

type RepositoryResolver interface {
	Resolve(ctx context.Context, input gitrepo.ResolveInput) (model.Repository, error)
}

type BuildCreator interface {
	Create(ctx context.Context, input build.CreateInput) (model.Build, error)
}

type TokenSource interface {
	GetRepositoryAuthToken(ctx context.Context, repo model.Repository) (*token.Token, error)
}
