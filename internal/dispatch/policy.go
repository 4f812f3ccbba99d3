package dispatch

import "buildhook/internal/model"

// ShouldTrigger: pushes always build; pull and merge requests build only when
// opened or updated with new commits.
func ShouldTrigger(ev model.ParsedWebhookEvent) bool {
	switch ev.Kind {
	case model.EventKindPush:
		return true
	case model.EventKindPullRequest, model.EventKindMergeRequest:
		return ev.Action == model.ActionOpened || ev.Action == model.ActionUpdated
	default:
		return false
	}
}

func triggerType(kind model.EventKind) model.TriggerType {
	switch kind {
	case model.EventKindPullRequest:
		return model.TriggerPullRequest
	case model.EventKindMergeRequest:
		return model.TriggerMergeRequest
	default:
		return model.TriggerPush
	}
}
