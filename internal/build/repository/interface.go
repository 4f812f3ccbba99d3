package repository

import (
	"context"

	"buildhook/internal/model"
)

type Repository interface {
	Create(ctx context.Context, opt CreateOptions) (model.Build, error)
	GetOne(ctx context.Context, id string) (model.Build, error)
	List(ctx context.Context, opt ListOptions) ([]model.Build, int, error)
	// UpdateStatus applies the change only while the stored status is still opt.From.
	// Returns the zero value when the row moved on or does not exist.
	UpdateStatus(ctx context.Context, opt UpdateStatusOptions) (model.Build, error)
	// CancelActive flips a pending or running build to cancelled. Zero value when it was not active.
	CancelActive(ctx context.Context, id string) (model.Build, error)
}
