package dispatch

import (
	"testing"

	"buildhook/internal/model"
)

func TestShouldTrigger(t *testing.T) {
	kinds := []model.EventKind{model.EventKindPush, model.EventKindPullRequest, model.EventKindMergeRequest, model.EventKindUnsupported}
	actions := []model.ChangeAction{"", model.ActionOpened, model.ActionUpdated, model.ActionReopened, model.ActionClosed, model.ActionMerged, model.ActionOther}

	for _, kind := range kinds {
		for _, action := range actions {
			var want bool
			switch kind {
			case model.EventKindPush:
				want = true
			case model.EventKindPullRequest, model.EventKindMergeRequest:
				want = action == model.ActionOpened || action == model.ActionUpdated
			}
			got := ShouldTrigger(model.ParsedWebhookEvent{Kind: kind, Action: action})
			if got != want {
				t.Errorf("ShouldTrigger(%s, %q) = %v, want %v", kind, action, got, want)
			}
		}
	}
}

func TestTriggerType(t *testing.T) {
	tcs := map[model.EventKind]model.TriggerType{
		model.EventKindPush:         model.TriggerPush,
		model.EventKindPullRequest:  model.TriggerPullRequest,
		model.EventKindMergeRequest: model.TriggerMergeRequest,
	}
	for kind, want := range tcs {
		if got := triggerType(kind); got != want {
			t.Errorf("triggerType(%s) = %s, want %s", kind, got, want)
		}
	}
}
