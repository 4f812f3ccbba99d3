package kafka

import (
	"time"

	"buildhook/internal/build"
)

type eventMessage struct {
	Type         string     `json:"type"`
	BuildID      string     `json:"build_id"`
	RepositoryID string     `json:"repository_id"`
	CommitSHA    string     `json:"commit_sha"`
	Branch       string     `json:"branch"`
	TriggerType  string     `json:"trigger_type"`
	Status       string     `json:"status"`
	WorkflowName string     `json:"workflow_name"`
	OccurredAt   time.Time  `json:"occurred_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

func toEventMessage(e build.Event, now time.Time) eventMessage {
	return eventMessage{
		Type:         string(e.Type),
		BuildID:      e.Build.ID,
		RepositoryID: e.Build.RepositoryID,
		CommitSHA:    e.Build.CommitSHA,
		Branch:       e.Build.Branch,
		TriggerType:  string(e.Build.TriggerType),
		Status:       string(e.Build.Status),
		WorkflowName: e.Build.WorkflowName,
		OccurredAt:   now.UTC(),
		FinishedAt:   e.Build.FinishedAt,
	}
}
