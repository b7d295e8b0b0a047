package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
)

// Publisher emits user lifecycle events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// RedisPublisher appends events to a Redis stream. Each event gets a
// snowflake id from the configured node.
type RedisPublisher struct {
	client *redis.Client
	node   *snowflake.Node
}

func NewRedisPublisher(client *redis.Client, nodeID int64) (*RedisPublisher, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to init event id node: %w", err)
	}
	return &RedisPublisher{client: client, node: node}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	eventJSON, err := p.encode(eventType, data)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *RedisPublisher) encode(eventType string, data any) ([]byte, error) {
	event := Event{
		ID:        p.node.Generate().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return eventJSON, nil
}

// NopPublisher drops every event. Used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
