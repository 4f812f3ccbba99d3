package build

import (
	"context"

	"buildhook/internal/model"
	"buildhook/internal/token"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Create records a pending build. Used by the dispatch worker.
	Create(ctx context.Context, input CreateInput) (model.Build, error)
	// Trigger creates a manual build for an active repository.
	Trigger(ctx context.Context, input TriggerInput) (model.Build, error)
	Detail(ctx context.Context, id string) (model.Build, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	// UpdateStatus applies an executor-reported transition.
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (model.Build, error)
	// Cancel requests cancellation. Cancelling a terminal build is a no-op.
	Cancel(ctx context.Context, id string) (CancelOutput, error)
	// Credentials returns the token an executor needs to fetch the build's repository.
	Credentials(ctx context.Context, id string) (*token.Token, error)
}

// Publisher announces build lifecycle events to out-of-process executors.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
