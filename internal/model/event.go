package model

import "time"

// WebhookEvent is the durable record of one inbound provider notification.
type WebhookEvent struct {
	ID            string
	RepositoryID  *string
	Provider      Provider
	EventType     string
	DeliveryID    string
	Payload       []byte
	PayloadDigest string
	Processed     bool
	ErrorMessage  *string
	ReceivedAt    time.Time
	ProcessedAt   *time.Time
}

// EventKind is the provider-independent kind of a parsed event.
type EventKind string

const (
	EventKindPush         EventKind = "push"
	EventKindPullRequest  EventKind = "pull_request"
	EventKindMergeRequest EventKind = "merge_request"
	EventKindUnsupported  EventKind = "unsupported"
)

// ChangeAction is the shared vocabulary for pull/merge request actions.
type ChangeAction string

const (
	ActionOpened   ChangeAction = "opened"
	ActionUpdated  ChangeAction = "updated"
	ActionReopened ChangeAction = "reopened"
	ActionClosed   ChangeAction = "closed"
	ActionMerged   ChangeAction = "merged"
	ActionOther    ChangeAction = "other"
)

// ParsedWebhookEvent holds the canonical fields dispatch needs from a payload.
type ParsedWebhookEvent struct {
	Provider Provider
	Kind     EventKind

	Owner     string
	Name      string
	CloneURL  string
	CommitSHA string
	Branch    string

	// ProviderRepoID is the GitHub repository id or the GitLab project id.
	ProviderRepoID int64
	InstallationID int64

	Number int
	// RawAction is the provider's own action string; Action is its normalized form.
	RawAction string
	Action    ChangeAction

	Author     string
	Message    string
	ReceivedAt time.Time
}

// FullName returns "owner/name".
func (e ParsedWebhookEvent) FullName() string {
	return e.Owner + "/" + e.Name
}

// DispatchJob is the queue entry handed from ingestion to the dispatch worker.
type DispatchJob struct {
	EventID   string
	Provider  Provider
	EventType string
}
