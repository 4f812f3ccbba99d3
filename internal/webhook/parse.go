package webhook

import (
	"fmt"
	"strings"
	"time"

	"buildhook/internal/model"
)

const (
	headsPrefix = "refs/heads/"
	zeroSHA     = "0000000000000000000000000000000000000000"
)

// Parse turns a raw provider payload into the fields dispatch needs. Event
// types that can never trigger a build come back with Kind unsupported and
// whatever repository fields the payload carries.
func Parse(provider model.Provider, eventType string, body []byte) (model.ParsedWebhookEvent, error) {
	var (
		ev  model.ParsedWebhookEvent
		err error
	)
	switch provider {
	case model.ProviderGitHub:
		ev, err = parseGitHub(eventType, body)
	case model.ProviderGitLab:
		ev, err = parseGitLab(eventType, body)
	default:
		return model.ParsedWebhookEvent{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if err != nil {
		return model.ParsedWebhookEvent{}, err
	}
	ev.Provider = provider
	ev.ReceivedAt = time.Now()
	return ev, nil
}

// branchFromRef reports false for tags and other non-branch refs.
func branchFromRef(ref string) (string, bool) {
	if !strings.HasPrefix(ref, headsPrefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, headsPrefix), true
}

// splitPath splits "group/sub/project" into ("group/sub", "project").
func splitPath(path string) (string, string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
