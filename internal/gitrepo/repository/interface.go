package repository

import (
	"context"

	"buildhook/internal/model"
)

type Repository interface {
	Create(ctx context.Context, opt CreateOptions) (model.Repository, error)
	GetOne(ctx context.Context, opt GetOneOptions) (model.Repository, error)
	List(ctx context.Context, opt ListOptions) ([]model.Repository, int, error)
	UpdateSecretHMAC(ctx context.Context, id, secretHMAC string) (model.Repository, error)
	Deactivate(ctx context.Context, id string) (model.Repository, error)
}
