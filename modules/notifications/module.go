// Package notifications sends notifications in response to events from
// other modules. It has no HTTP surface.
package notifications

import (
	"log/slog"

	"github.com/rai/myapp-backend/modules/notifications/application/eventhandlers"
	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/events/contracts"
)

// Module represents the notification module entry point.
type Module struct{}

type Config struct {
	EventSubscriber events.Subscriber
	Logger          *slog.Logger
}

// New initializes the notification module and subscribes to events.
// Subscription failures are logged; the module keeps working for the
// event types it did subscribe to.
func New(cfg Config) *Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("module", "notifications")

	userEvents := eventhandlers.NewUserEventsHandler(logger)
	feedbackCreated := eventhandlers.NewFeedbackCreatedHandler(logger)

	subscriptions := []struct {
		eventType events.EventType
		handler   events.Handler
	}{
		{contracts.UserCreatedEventType, userEvents},
		{contracts.UserUpdatedEventType, userEvents},
		{contracts.UserDeletedEventType, userEvents},
		{contracts.FeedbackCreatedEventType, feedbackCreated},
	}

	for _, sub := range subscriptions {
		if err := cfg.EventSubscriber.Subscribe(sub.eventType, sub.handler); err != nil {
			logger.Error("failed to subscribe to event",
				slog.String("event_type", sub.eventType.String()),
				slog.Any("error", err),
			)
		}
	}

	return &Module{}
}
