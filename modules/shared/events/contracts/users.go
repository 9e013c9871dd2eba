// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/rai/myapp-backend/modules/shared/events"

// User module event types.
// These are the "public API" of the users module for event-driven communication.
const (
	UserCreatedEventType events.EventType = "users.UserCreated"
	UserUpdatedEventType events.EventType = "users.UserUpdated"
	UserDeletedEventType events.EventType = "users.UserDeleted"
)

// UserCreatedEvent is published after a new user record is stored.
type UserCreatedEvent struct {
	events.BaseEvent
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// UserUpdatedEvent is published after a user record is replaced.
type UserUpdatedEvent struct {
	events.BaseEvent
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// UserDeletedEvent is the public contract for user deletion events.
type UserDeletedEvent struct {
	events.BaseEvent
	UserID int64 `json:"user_id"`
}
