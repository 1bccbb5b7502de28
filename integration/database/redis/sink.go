package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lakospeter91/appleremote/core/remote"
)

// DefaultEventsChannel is the pub/sub channel events are published to when none is configured.
const DefaultEventsChannel = "appleremote:events"

// Publisher is the subset of the go-redis client used by EventSink.
// *redis.Client, *redis.ClusterClient and redis.UniversalClient satisfy it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// EventSink is a remote.Handler that forwards every event to a Redis pub/sub channel
// as JSON, so other processes can react to the remote without owning the helper.
//
// Example:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	r.AddListener(redis.NewEventSink(client, cfg.EventsChannel))
type EventSink struct {
	client  Publisher
	channel string
}

// NewEventSink creates a sink publishing to channel. An empty channel means DefaultEventsChannel.
func NewEventSink(client Publisher, channel string) *EventSink {
	if channel == "" {
		channel = DefaultEventsChannel
	}
	return &EventSink{client: client, channel: channel}
}

// Channel returns the pub/sub channel the sink publishes to.
func (s *EventSink) Channel() string {
	return s.channel
}

// Handle implements remote.Handler.
func (s *EventSink) Handle(ctx context.Context, e remote.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, s.channel, err)
	}
	return nil
}
