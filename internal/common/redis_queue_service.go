package common

import (
	"context"
	"encoding/json"
	"fmt"

	"infinite-experiment/consortium/internal/governance"

	"github.com/redis/go-redis/v9"
)

// RedisQueueService publishes committed governance events to a Redis Stream
// so collaborators (the insurance app, oracles, dashboards) can follow the
// consortium without polling the ledger.
type RedisQueueService struct {
	client *redis.Client
	stream string
	maxLen int64
}

var _ governance.EventSink = (*RedisQueueService)(nil)

// NewRedisQueueService creates an event publisher for stream. The stream is
// approximately trimmed to maxLen entries; zero disables trimming.
func NewRedisQueueService(client *redis.Client, stream string, maxLen int64) *RedisQueueService {
	return &RedisQueueService{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish adds the event to the stream.
// XADD stream [MAXLEN ~ n] * kind <kind> data <json>
func (s *RedisQueueService) Publish(ctx context.Context, ev governance.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"kind": string(ev.Kind),
			"data": string(data),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to add event %s to stream: %w", ev.ID, err)
	}
	return nil
}

// DecodeStreamEvent turns a stream entry written by Publish back into an event.
func DecodeStreamEvent(msg redis.XMessage) (governance.Event, error) {
	var ev governance.Event

	raw, ok := msg.Values["data"].(string)
	if !ok {
		return ev, fmt.Errorf("stream entry %s has no data field", msg.ID)
	}
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return ev, fmt.Errorf("failed to decode stream entry %s: %w", msg.ID, err)
	}
	return ev, nil
}
