package webhook

import (
	"encoding/json"
	"fmt"

	"buildhook/internal/model"
)

type githubRepository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	Owner    struct {
		Login string `json:"login"`
		Name  string `json:"name"`
	} `json:"owner"`
}

type githubEnvelope struct {
	Repository   githubRepository `json:"repository"`
	Installation struct {
		ID int64 `json:"id"`
	} `json:"installation"`
}

func (e githubEnvelope) apply(ev *model.ParsedWebhookEvent) {
	owner := e.Repository.Owner.Login
	if owner == "" {
		owner = e.Repository.Owner.Name
	}
	if owner == "" {
		owner, _ = splitPath(e.Repository.FullName)
	}
	ev.Owner = owner
	ev.Name = e.Repository.Name
	ev.CloneURL = e.Repository.CloneURL
	ev.ProviderRepoID = e.Repository.ID
	ev.InstallationID = e.Installation.ID
}

func parseGitHub(eventType string, body []byte) (model.ParsedWebhookEvent, error) {
	switch eventType {
	case "push":
		return parseGitHubPush(body)
	case "pull_request":
		return parseGitHubPullRequest(body)
	default:
		var env githubEnvelope
		ev := model.ParsedWebhookEvent{Kind: model.EventKindUnsupported, RawAction: eventType}
		if err := json.Unmarshal(body, &env); err == nil {
			env.apply(&ev)
		}
		return ev, nil
	}
}

func parseGitHubPush(body []byte) (model.ParsedWebhookEvent, error) {
	var event struct {
		githubEnvelope
		Ref        string `json:"ref"`
		After      string `json:"after"`
		Deleted    bool   `json:"deleted"`
		HeadCommit *struct {
			ID      string `json:"id"`
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"head_commit"`
		Pusher struct {
			Name string `json:"name"`
		} `json:"pusher"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: github push: %v", ErrMalformedPayload, err)
	}

	ev := model.ParsedWebhookEvent{Kind: model.EventKindPush, CommitSHA: event.After, Author: event.Pusher.Name}
	event.githubEnvelope.apply(&ev)
	if event.HeadCommit != nil {
		ev.CommitSHA = event.HeadCommit.ID
		ev.Message = event.HeadCommit.Message
		if event.HeadCommit.Author.Name != "" {
			ev.Author = event.HeadCommit.Author.Name
		}
	}

	branch, ok := branchFromRef(event.Ref)
	// Tag pushes and branch deletions have nothing to build.
	if !ok || event.Deleted || ev.CommitSHA == "" || ev.CommitSHA == zeroSHA {
		ev.Kind = model.EventKindUnsupported
		ev.RawAction = "push:" + event.Ref
		return ev, nil
	}
	ev.Branch = branch
	return ev, nil
}

func parseGitHubPullRequest(body []byte) (model.ParsedWebhookEvent, error) {
	var event struct {
		githubEnvelope
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Title string `json:"title"`
			Head  struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			} `json:"head"`
			User struct {
				Login string `json:"login"`
			} `json:"user"`
			Merged bool `json:"merged"`
		} `json:"pull_request"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: github pull_request: %v", ErrMalformedPayload, err)
	}

	ev := model.ParsedWebhookEvent{
		Kind:      model.EventKindPullRequest,
		CommitSHA: event.PullRequest.Head.SHA,
		Branch:    event.PullRequest.Head.Ref,
		Number:    event.Number,
		RawAction: event.Action,
		Action:    githubAction(event.Action, event.PullRequest.Merged),
		Author:    event.PullRequest.User.Login,
		Message:   event.PullRequest.Title,
	}
	event.githubEnvelope.apply(&ev)
	return ev, nil
}

func githubAction(action string, merged bool) model.ChangeAction {
	switch action {
	case "opened":
		return model.ActionOpened
	case "synchronize":
		return model.ActionUpdated
	case "reopened":
		return model.ActionReopened
	case "closed":
		if merged {
			return model.ActionMerged
		}
		return model.ActionClosed
	default:
		return model.ActionOther
	}
}
