package usecase

import (
	"context"
	"errors"
	"fmt"

	"buildhook/internal/model"
	"buildhook/internal/webhook"
	repo "buildhook/internal/webhook/repository"
	"buildhook/pkg/encrypter"
)

// deliveryFallbackPrefix marks delivery ids derived from the payload digest for
// senders that do not provide one.
const deliveryFallbackPrefix = "blake3:"

// Ingest stores the event before anything else happens to it. Once it returns
// nil the event is either queued or will be picked up by recovery on restart.
func (uc *implUseCase) Ingest(ctx context.Context, input webhook.IngestInput) (webhook.IngestOutput, error) {
	if _, err := model.ParseProvider(string(input.Provider)); err != nil {
		return webhook.IngestOutput{}, fmt.Errorf("%w: %v", webhook.ErrUnknownProvider, err)
	}
	if uc.cfg.MaxPayloadBytes > 0 && int64(len(input.Payload)) > uc.cfg.MaxPayloadBytes {
		return webhook.IngestOutput{}, webhook.ErrPayloadTooLarge
	}

	parsed, err := webhook.Parse(input.Provider, input.EventType, input.Payload)
	if err != nil {
		uc.l.Warnf(ctx, "internal.webhook.usecase.Ingest: %s %s: %v", input.Provider, input.EventType, err)
		return webhook.IngestOutput{}, err
	}

	digest := encrypter.Hash(input.Payload)
	deliveryID := input.DeliveryID
	if deliveryID == "" {
		deliveryID = deliveryFallbackPrefix + digest
	}

	ev, err := uc.repo.Create(ctx, repo.CreateOptions{
		RepositoryID:  input.RepositoryID,
		Provider:      input.Provider,
		EventType:     input.EventType,
		DeliveryID:    deliveryID,
		Payload:       input.Payload,
		PayloadDigest: digest,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		uc.l.Infof(ctx, "internal.webhook.usecase.Ingest: duplicate %s delivery %s", input.Provider, deliveryID)
		return webhook.IngestOutput{}, webhook.ErrDuplicateDelivery
	}
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.Ingest: %v", err)
		return webhook.IngestOutput{}, err
	}

	job := model.DispatchJob{EventID: ev.ID, Provider: ev.Provider, EventType: ev.EventType}
	if err := uc.enqueuer.Enqueue(ctx, job); err != nil {
		// Stored but not queued: the worker's periodic sweep re-queues it.
		uc.l.Warnf(ctx, "internal.webhook.usecase.Ingest: enqueue %s: %v", ev.ID, err)
	}

	uc.l.Infof(ctx, "internal.webhook.usecase.Ingest: stored %s %s event %s (%s)", ev.Provider, ev.EventType, ev.ID, parsed.Kind)
	return webhook.IngestOutput{Event: ev, Parsed: parsed}, nil
}
