package domain

import (
	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/events/contracts"
)

const FeedbackCreatedEventType events.EventType = contracts.FeedbackCreatedEventType

func NewFeedbackCreatedEvent(fb *Feedback) contracts.FeedbackCreatedEvent {
	return contracts.FeedbackCreatedEvent{
		BaseEvent:  events.NewBaseEvent(FeedbackCreatedEventType, fb.ID.String()),
		FeedbackID: fb.ID.Int64(),
		Username:   fb.Username,
	}
}
