package events

import "time"

// Event types
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// Stream names
const (
	UserEventsStream = "user.events"
)

// Base event structure
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// User events
type UserCreatedEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserUpdatedEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserDeletedEvent struct {
	UserID int64 `json:"userId"`
}
