package usecase

import (
	"context"

	"buildhook/internal/build"
)

// Cancel records the cancellation signal and flips the stored status. It
// returns once the signal is recorded; the executor stops at its next safe point.
func (uc *implUseCase) Cancel(ctx context.Context, id string) (build.CancelOutput, error) {
	current, err := uc.Detail(ctx, id)
	if err != nil {
		return build.CancelOutput{}, err
	}
	if current.Status.IsTerminal() {
		return build.CancelOutput{Build: current, NoOp: true}, nil
	}

	signalled := uc.registry.Signal(id)

	cancelled, err := uc.repo.CancelActive(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.Cancel: %v", err)
		return build.CancelOutput{}, err
	}
	if cancelled.ID == "" {
		// Finished between the read and the write.
		uc.registry.Release(id)
		final, err := uc.Detail(ctx, id)
		if err != nil {
			return build.CancelOutput{}, err
		}
		return build.CancelOutput{Build: final, NoOp: true}, nil
	}

	if !signalled {
		// Nothing is executing; the stored status alone stops a later start.
		uc.registry.Release(id)
	}

	uc.l.Infof(ctx, "internal.build.usecase.Cancel: build %s cancelled (live handle: %t)", id, signalled)
	uc.publish(ctx, build.EventBuildCancelled, cancelled)
	return build.CancelOutput{Build: cancelled, Signalled: signalled}, nil
}
