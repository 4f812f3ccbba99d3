package http

import (
	"time"

	"buildhook/internal/build"
	"buildhook/internal/model"
	"buildhook/internal/token"
)

// --- Request DTOs ---

type triggerReq struct {
	RepositoryID string `json:"repository_id" binding:"required"`
	Branch       string `json:"branch"        binding:"max=255"`
	CommitSHA    string `json:"commit_sha"    binding:"omitempty,hexadecimal,min=7,max=64"`
	WorkflowName string `json:"workflow_name" binding:"max=255"`
}

func (r triggerReq) toInput() build.TriggerInput {
	return build.TriggerInput{
		RepositoryID: r.RepositoryID,
		Branch:       r.Branch,
		CommitSHA:    r.CommitSHA,
		WorkflowName: r.WorkflowName,
	}
}

type listReq struct {
	RepositoryID string `form:"repository_id"`
	Status       string `form:"status" binding:"omitempty,oneof=pending running success failure cancelled"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

func (r listReq) toInput() build.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	return build.ListInput{
		RepositoryID: r.RepositoryID,
		Status:       model.BuildStatus(r.Status),
		Limit:        limit,
		Offset:       offset,
	}
}

type updateStatusReq struct {
	Status       string `json:"status"        binding:"required,oneof=running success failure cancelled"`
	ErrorMessage string `json:"error_message" binding:"max=4096"`
}

func (r updateStatusReq) toInput(id string) build.UpdateStatusInput {
	return build.UpdateStatusInput{
		ID:           id,
		Status:       model.BuildStatus(r.Status),
		ErrorMessage: r.ErrorMessage,
	}
}

// --- Response DTOs ---

type buildResp struct {
	ID             string     `json:"id"`
	RepositoryID   string     `json:"repository_id"`
	WebhookEventID *string    `json:"webhook_event_id,omitempty"`
	CommitSHA      string     `json:"commit_sha"`
	Branch         string     `json:"branch"`
	TriggerType    string     `json:"trigger_type"`
	Status         string     `json:"status"`
	WorkflowName   string     `json:"workflow_name"`
	ConfigSource   string     `json:"config_source,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newBuildResp(b model.Build) buildResp {
	return buildResp{
		ID:             b.ID,
		RepositoryID:   b.RepositoryID,
		WebhookEventID: b.WebhookEventID,
		CommitSHA:      b.CommitSHA,
		Branch:         b.Branch,
		TriggerType:    string(b.TriggerType),
		Status:         string(b.Status),
		WorkflowName:   b.WorkflowName,
		ConfigSource:   b.ConfigSource,
		ErrorMessage:   b.ErrorMessage,
		StartedAt:      b.StartedAt,
		FinishedAt:     b.FinishedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

type listResp struct {
	Builds []buildResp `json:"builds"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func (h *handler) newListResp(out build.ListOutput) listResp {
	items := make([]buildResp, len(out.Builds))
	for i, b := range out.Builds {
		items[i] = newBuildResp(b)
	}
	return listResp{
		Builds: items,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type cancelResp struct {
	Build buildResp `json:"build"`
	// Already is true when the build had finished before the request.
	Already bool `json:"already_finished"`
}

type credentialsResp struct {
	// Public is true when the repository needs no token.
	Public    bool       `json:"public"`
	Provider  string     `json:"provider,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newCredentialsResp(t *token.Token) credentialsResp {
	if t == nil {
		return credentialsResp{Public: true}
	}
	return credentialsResp{
		Provider:  t.Provider.String(),
		Token:     t.Value,
		ExpiresAt: t.ExpiresAt,
	}
}
