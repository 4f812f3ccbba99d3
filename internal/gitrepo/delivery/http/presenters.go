package http

import (
	"time"

	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
)

// --- Request DTOs ---

type registerReq struct {
	Provider             string `json:"provider"       binding:"required,oneof=github gitlab"`
	Owner                string `json:"owner"          binding:"required,max=255"`
	Name                 string `json:"name"           binding:"required,max=255"`
	CloneURL             string `json:"clone_url"      binding:"required,url"`
	DefaultBranch        string `json:"default_branch" binding:"max=255"`
	GitHubRepoID         *int64 `json:"github_repo_id"`
	GitHubInstallationID *int64 `json:"github_installation_id"`
	GitLabProjectID      *int64 `json:"gitlab_project_id"`
	WebhookSecret        string `json:"webhook_secret" binding:"omitempty,min=16,max=255"`
}

func (r registerReq) toInput() gitrepo.RegisterInput {
	return gitrepo.RegisterInput{
		Provider:             model.Provider(r.Provider),
		Owner:                r.Owner,
		Name:                 r.Name,
		CloneURL:             r.CloneURL,
		DefaultBranch:        r.DefaultBranch,
		GitHubRepoID:         r.GitHubRepoID,
		GitHubInstallationID: r.GitHubInstallationID,
		GitLabProjectID:      r.GitLabProjectID,
		WebhookSecret:        r.WebhookSecret,
	}
}

type listReq struct {
	Provider   string `form:"provider" binding:"omitempty,oneof=github gitlab"`
	ActiveOnly bool   `form:"active_only"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

func (r listReq) toInput() gitrepo.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	return gitrepo.ListInput{
		Provider:   model.Provider(r.Provider),
		ActiveOnly: r.ActiveOnly,
		Limit:      limit,
		Offset:     offset,
	}
}

// --- Response DTOs ---

type repositoryResp struct {
	ID                   string    `json:"id"`
	Provider             string    `json:"provider"`
	Owner                string    `json:"owner"`
	Name                 string    `json:"name"`
	CloneURL             string    `json:"clone_url"`
	DefaultBranch        string    `json:"default_branch"`
	Active               bool      `json:"active"`
	GitHubRepoID         *int64    `json:"github_repo_id,omitempty"`
	GitHubInstallationID *int64    `json:"github_installation_id,omitempty"`
	GitLabProjectID      *int64    `json:"gitlab_project_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newRepositoryResp(r model.Repository) repositoryResp {
	return repositoryResp{
		ID:                   r.ID,
		Provider:             r.Provider.String(),
		Owner:                r.Owner,
		Name:                 r.Name,
		CloneURL:             r.CloneURL,
		DefaultBranch:        r.DefaultBranch,
		Active:               r.Active,
		GitHubRepoID:         r.GitHubRepoID,
		GitHubInstallationID: r.GitHubInstallationID,
		GitLabProjectID:      r.GitLabProjectID,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// secretResp is returned once on registration and rotation.
// WebhookSecretVerifiesIntake is false for GitHub repositories: their
// deliveries are checked against the GitHub App webhook secret.
type secretResp struct {
	Repository                  repositoryResp `json:"repository"`
	WebhookSecret               string         `json:"webhook_secret"`
	WebhookSecretVerifiesIntake bool           `json:"webhook_secret_verifies_intake"`
}

type listResp struct {
	Repositories []repositoryResp `json:"repositories"`
	Total        int              `json:"total"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
}

func (h *handler) newListResp(out gitrepo.ListOutput) listResp {
	items := make([]repositoryResp, len(out.Repositories))
	for i, r := range out.Repositories {
		items[i] = newRepositoryResp(r)
	}
	return listResp{
		Repositories: items,
		Total:        out.Total,
		Limit:        out.Limit,
		Offset:       out.Offset,
	}
}
