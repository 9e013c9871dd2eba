package domain

import (
	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/events/contracts"
)

// Event types re-exported for the module's own use.
const (
	UserCreatedEventType events.EventType = contracts.UserCreatedEventType
	UserUpdatedEventType events.EventType = contracts.UserUpdatedEventType
	UserDeletedEventType events.EventType = contracts.UserDeletedEventType
)

func NewUserCreatedEvent(user *User) contracts.UserCreatedEvent {
	return contracts.UserCreatedEvent{
		BaseEvent: events.NewBaseEvent(UserCreatedEventType, user.ID.String()),
		UserID:    user.ID.Int64(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
	}
}

func NewUserUpdatedEvent(user *User) contracts.UserUpdatedEvent {
	return contracts.UserUpdatedEvent{
		BaseEvent: events.NewBaseEvent(UserUpdatedEventType, user.ID.String()),
		UserID:    user.ID.Int64(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
	}
}

func NewUserDeletedEvent(id UserID) contracts.UserDeletedEvent {
	return contracts.UserDeletedEvent{
		BaseEvent: events.NewBaseEvent(UserDeletedEventType, id.String()),
		UserID:    id.Int64(),
	}
}
