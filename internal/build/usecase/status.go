package usecase

import (
	"context"
	"fmt"

	"buildhook/internal/build"
	repo "buildhook/internal/build/repository"
	"buildhook/internal/model"
)

// UpdateStatus applies an executor transition. The stored status is compared
// on write, so a concurrent cancel wins over a late running/success report.
func (uc *implUseCase) UpdateStatus(ctx context.Context, input build.UpdateStatusInput) (model.Build, error) {
	if !input.Status.Valid() {
		return model.Build{}, fmt.Errorf("%w: unknown status %q", build.ErrInvalidInput, input.Status)
	}

	current, err := uc.Detail(ctx, input.ID)
	if err != nil {
		return model.Build{}, err
	}
	if !current.Status.CanTransition(input.Status) {
		return model.Build{}, fmt.Errorf("%w: %s -> %s", build.ErrInvalidTransition, current.Status, input.Status)
	}

	var errMsg *string
	if input.ErrorMessage != "" {
		errMsg = &input.ErrorMessage
	}

	updated, err := uc.repo.UpdateStatus(ctx, repo.UpdateStatusOptions{
		ID:           input.ID,
		From:         current.Status,
		To:           input.Status,
		ErrorMessage: errMsg,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.UpdateStatus: %v", err)
		return model.Build{}, err
	}
	if updated.ID == "" {
		return model.Build{}, fmt.Errorf("%w: build %s changed concurrently", build.ErrInvalidTransition, input.ID)
	}

	if updated.Status.IsTerminal() {
		uc.registry.Release(updated.ID)
	}
	uc.l.Infof(ctx, "internal.build.usecase.UpdateStatus: build %s %s -> %s", updated.ID, current.Status, updated.Status)
	return updated, nil
}
