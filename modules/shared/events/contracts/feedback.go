package contracts

import "github.com/rai/myapp-backend/modules/shared/events"

const FeedbackCreatedEventType events.EventType = "feedback.FeedbackCreated"

// FeedbackCreatedEvent is published when a visitor leaves feedback.
type FeedbackCreatedEvent struct {
	events.BaseEvent
	FeedbackID int64  `json:"feedback_id"`
	Username   string `json:"username"`
}
