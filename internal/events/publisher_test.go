package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisPublisher_RejectsBadNode(t *testing.T) {
	_, err := NewRedisPublisher(redis.NewClient(&redis.Options{}), 5000)
	assert.Error(t, err)
}

func TestRedisPublisher_EncodeEnvelope(t *testing.T) {
	p, err := NewRedisPublisher(redis.NewClient(&redis.Options{}), 1)
	require.NoError(t, err)

	raw, err := p.encode(UserCreated, UserCreatedEvent{UserID: 7, Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	var got struct {
		ID   string           `json:"id"`
		Type string           `json:"type"`
		Data UserCreatedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, UserCreated, got.Type)
	assert.Equal(t, int64(7), got.Data.UserID)
	assert.Equal(t, "a@x.com", got.Data.Email)
}

func TestRedisPublisher_IDsAreUnique(t *testing.T) {
	p, err := NewRedisPublisher(redis.NewClient(&redis.Options{}), 1)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		raw, err := p.encode(UserDeleted, UserDeletedEvent{UserID: int64(i)})
		require.NoError(t, err)
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.False(t, seen[ev.ID], "duplicate event id %s", ev.ID)
		seen[ev.ID] = true
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), UserEventsStream, UserDeleted, UserDeletedEvent{UserID: 1}))
}
