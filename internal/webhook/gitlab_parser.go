package webhook

import (
	"encoding/json"
	"fmt"

	"buildhook/internal/model"
)

type gitlabProject struct {
	ID                int64  `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
	GitHTTPURL        string `json:"git_http_url"`
}

type gitlabEnvelope struct {
	ObjectKind string        `json:"object_kind"`
	ProjectID  int64         `json:"project_id"`
	Project    gitlabProject `json:"project"`
}

func (e gitlabEnvelope) apply(ev *model.ParsedWebhookEvent) {
	ev.Owner, ev.Name = splitPath(e.Project.PathWithNamespace)
	ev.CloneURL = e.Project.GitHTTPURL
	ev.ProviderRepoID = e.Project.ID
	if ev.ProviderRepoID == 0 {
		ev.ProviderRepoID = e.ProjectID
	}
}

// gitlabKind maps the X-Gitlab-Event header, falling back to object_kind for
// system hooks which share one header value.
func gitlabKind(eventType, objectKind string) string {
	switch eventType {
	case "Push Hook":
		return "push"
	case "Merge Request Hook":
		return "merge_request"
	case "Tag Push Hook":
		return "tag_push"
	}
	return objectKind
}

func parseGitLab(eventType string, body []byte) (model.ParsedWebhookEvent, error) {
	var env gitlabEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: gitlab: %v", ErrMalformedPayload, err)
	}

	switch gitlabKind(eventType, env.ObjectKind) {
	case "push":
		return parseGitLabPush(env, body)
	case "merge_request":
		return parseGitLabMergeRequest(env, body)
	default:
		ev := model.ParsedWebhookEvent{Kind: model.EventKindUnsupported, RawAction: eventType}
		env.apply(&ev)
		return ev, nil
	}
}

func parseGitLabPush(env gitlabEnvelope, body []byte) (model.ParsedWebhookEvent, error) {
	var event struct {
		Ref         string `json:"ref"`
		After       string `json:"after"`
		CheckoutSHA string `json:"checkout_sha"`
		UserName    string `json:"user_name"`
		Commits     []struct {
			ID      string `json:"id"`
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"commits"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: gitlab push: %v", ErrMalformedPayload, err)
	}

	ev := model.ParsedWebhookEvent{Kind: model.EventKindPush, CommitSHA: event.CheckoutSHA, Author: event.UserName}
	env.apply(&ev)
	if ev.CommitSHA == "" {
		ev.CommitSHA = event.After
	}
	if n := len(event.Commits); n > 0 {
		last := event.Commits[n-1]
		ev.Message = last.Message
		if last.Author.Name != "" {
			ev.Author = last.Author.Name
		}
	}

	branch, ok := branchFromRef(event.Ref)
	if !ok || ev.CommitSHA == "" || ev.CommitSHA == zeroSHA {
		ev.Kind = model.EventKindUnsupported
		ev.RawAction = "push:" + event.Ref
		return ev, nil
	}
	ev.Branch = branch
	return ev, nil
}

func parseGitLabMergeRequest(env gitlabEnvelope, body []byte) (model.ParsedWebhookEvent, error) {
	var event struct {
		ObjectAttributes struct {
			IID          int    `json:"iid"`
			Title        string `json:"title"`
			Action       string `json:"action"`
			SourceBranch string `json:"source_branch"`
			LastCommit   struct {
				ID string `json:"id"`
			} `json:"last_commit"`
		} `json:"object_attributes"`
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: gitlab merge_request: %v", ErrMalformedPayload, err)
	}

	attrs := event.ObjectAttributes
	ev := model.ParsedWebhookEvent{
		Kind:      model.EventKindMergeRequest,
		CommitSHA: attrs.LastCommit.ID,
		Branch:    attrs.SourceBranch,
		Number:    attrs.IID,
		RawAction: attrs.Action,
		Action:    gitlabAction(attrs.Action),
		Author:    event.User.Username,
		Message:   attrs.Title,
	}
	env.apply(&ev)
	return ev, nil
}

func gitlabAction(action string) model.ChangeAction {
	switch action {
	case "open":
		return model.ActionOpened
	case "update":
		return model.ActionUpdated
	case "reopen":
		return model.ActionReopened
	case "close":
		return model.ActionClosed
	case "merge":
		return model.ActionMerged
	default:
		return model.ActionOther
	}
}
