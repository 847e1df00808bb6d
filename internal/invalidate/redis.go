// Package invalidate implements the view-invalidation port over Redis
// pub/sub. Each successful mutation publishes the stale path on the
// VIEW_INVALIDATED channel; frontends subscribed there refetch before their
// next render.
package invalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel invalidation events are published on.
const Channel = "VIEW_INVALIDATED"

// Publisher broadcasts invalidation events through Redis.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher returns a publisher over the given Redis client.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Invalidate publishes the stale path. Callers treat the result as
// fire-and-forget; a publish failure only surfaces for logging.
func (p *Publisher) Invalidate(ctx context.Context, path string) error {
	event, _ := json.Marshal(map[string]string{
		"type": "VIEW_INVALIDATED",
		"path": path,
		"at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err := p.rdb.Publish(ctx, Channel, event).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", Channel, err)
	}
	return nil
}
