package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buildhook/internal/build"
)

// Publish keys records by repository so a repository's events stay ordered
// within one partition.
func (p *publisher) Publish(ctx context.Context, e build.Event) error {
	value, err := json.Marshal(toEventMessage(e, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Type, err)
	}
	return p.prod.Publish(ctx, p.topic, e.Build.RepositoryID, value)
}
