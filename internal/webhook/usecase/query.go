package usecase

import (
	"context"

	"buildhook/internal/model"
	"buildhook/internal/webhook"
	repo "buildhook/internal/webhook/repository"
)

func (uc *implUseCase) List(ctx context.Context, input webhook.ListInput) (webhook.ListOutput, error) {
	events, total, err := uc.repo.List(ctx, repo.ListOptions{
		Provider:     input.Provider,
		RepositoryID: input.RepositoryID,
		Processed:    input.Processed,
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.List: %v", err)
		return webhook.ListOutput{}, err
	}
	return webhook.ListOutput{Events: events, Total: total, Limit: input.Limit, Offset: input.Offset}, nil
}

func (uc *implUseCase) Detail(ctx context.Context, id string) (model.WebhookEvent, error) {
	ev, err := uc.repo.GetOne(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.Detail: %v", err)
		return model.WebhookEvent{}, err
	}
	if ev.ID == "" {
		return model.WebhookEvent{}, webhook.ErrEventNotFound
	}
	return ev, nil
}

func (uc *implUseCase) MarkProcessed(ctx context.Context, input webhook.MarkProcessedInput) error {
	var errMsg *string
	if input.ErrorMessage != "" {
		errMsg = &input.ErrorMessage
	}
	if err := uc.repo.MarkProcessed(ctx, repo.MarkProcessedOptions{
		ID:           input.ID,
		RepositoryID: input.RepositoryID,
		ErrorMessage: errMsg,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.MarkProcessed: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error) {
	events, err := uc.repo.ListUnprocessed(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.ListUnprocessed: %v", err)
		return nil, err
	}
	return events, nil
}
