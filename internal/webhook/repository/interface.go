package repository

import (
	"context"

	"buildhook/internal/model"
)

type Repository interface {
	// Create stores the raw event. ErrDuplicate when (provider, delivery_id) exists.
	Create(ctx context.Context, opt CreateOptions) (model.WebhookEvent, error)
	GetOne(ctx context.Context, id string) (model.WebhookEvent, error)
	// List omits payloads.
	List(ctx context.Context, opt ListOptions) ([]model.WebhookEvent, int, error)
	MarkProcessed(ctx context.Context, opt MarkProcessedOptions) error
	// ListUnprocessed returns events with processed = false, oldest first.
	ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error)
}
