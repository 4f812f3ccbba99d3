package usecase

import (
	"context"
	"errors"
	"fmt"

	"buildhook/internal/build"
	repo "buildhook/internal/build/repository"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
)

const defaultWorkflowName = "default"

func (uc *implUseCase) Create(ctx context.Context, input build.CreateInput) (model.Build, error) {
	if input.RepositoryID == "" {
		return model.Build{}, fmt.Errorf("%w: repository_id is required", build.ErrInvalidInput)
	}
	switch input.TriggerType {
	case model.TriggerPush, model.TriggerPullRequest, model.TriggerMergeRequest, model.TriggerManual:
	default:
		return model.Build{}, fmt.Errorf("%w: unknown trigger %q", build.ErrInvalidInput, input.TriggerType)
	}
	if input.WorkflowName == "" {
		input.WorkflowName = defaultWorkflowName
	}

	b, err := uc.repo.Create(ctx, repo.CreateOptions{
		RepositoryID:   input.RepositoryID,
		WebhookEventID: input.WebhookEventID,
		CommitSHA:      input.CommitSHA,
		Branch:         input.Branch,
		TriggerType:    input.TriggerType,
		WorkflowName:   input.WorkflowName,
		ConfigSource:   input.ConfigSource,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.Create: %v", err)
		return model.Build{}, err
	}

	uc.l.Infof(ctx, "internal.build.usecase.Create: build %s pending (%s %s@%s)", b.ID, b.TriggerType, b.Branch, shortSHA(b.CommitSHA))
	uc.publish(ctx, build.EventBuildCreated, b)
	return b, nil
}

// Trigger creates a manual build. Credentials are checked first so a missing
// App or GitLab link is reported to the caller instead of failing later in the executor.
func (uc *implUseCase) Trigger(ctx context.Context, input build.TriggerInput) (model.Build, error) {
	target, err := uc.repos.Detail(ctx, input.RepositoryID)
	if errors.Is(err, gitrepo.ErrRepositoryNotFound) {
		return model.Build{}, err
	}
	if err != nil {
		uc.l.Errorf(ctx, "internal.build.usecase.Trigger: %v", err)
		return model.Build{}, err
	}
	if !target.Active {
		return model.Build{}, build.ErrRepositoryInactive
	}

	if _, err := uc.tokens.GetRepositoryAuthToken(ctx, target); err != nil {
		uc.l.Warnf(ctx, "internal.build.usecase.Trigger: credentials for %s: %v", target.FullName(), err)
		return model.Build{}, err
	}

	branch := input.Branch
	if branch == "" {
		branch = target.DefaultBranch
	}

	return uc.Create(ctx, build.CreateInput{
		RepositoryID: target.ID,
		CommitSHA:    input.CommitSHA,
		Branch:       branch,
		TriggerType:  model.TriggerManual,
		WorkflowName: input.WorkflowName,
		ConfigSource: "api",
	})
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
