package model

import "time"

type BuildStatus string

const (
	BuildStatusPending   BuildStatus = "pending"
	BuildStatusRunning   BuildStatus = "running"
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailure   BuildStatus = "failure"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s BuildStatus) IsTerminal() bool {
	switch s {
	case BuildStatusSuccess, BuildStatusFailure, BuildStatusCancelled:
		return true
	default:
		return false
	}
}

// Valid reports whether s is a known status.
func (s BuildStatus) Valid() bool {
	switch s {
	case BuildStatusPending, BuildStatusRunning, BuildStatusSuccess, BuildStatusFailure, BuildStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition implements pending -> running -> {success, failure} and
// pending/running -> cancelled.
func (s BuildStatus) CanTransition(to BuildStatus) bool {
	switch s {
	case BuildStatusPending:
		return to == BuildStatusRunning || to == BuildStatusCancelled
	case BuildStatusRunning:
		return to == BuildStatusSuccess || to == BuildStatusFailure || to == BuildStatusCancelled
	default:
		return false
	}
}

type TriggerType string

const (
	TriggerPush         TriggerType = "push"
	TriggerPullRequest  TriggerType = "pull_request"
	TriggerMergeRequest TriggerType = "merge_request"
	TriggerManual       TriggerType = "manual"
)

// Build is one requested pipeline run for a commit.
type Build struct {
	ID             string
	RepositoryID   string
	WebhookEventID *string
	CommitSHA      string
	Branch         string
	TriggerType    TriggerType
	Status         BuildStatus
	StartedAt      *time.Time
	FinishedAt     *time.Time
	WorkflowName   string
	ConfigSource   string
	ErrorMessage   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
