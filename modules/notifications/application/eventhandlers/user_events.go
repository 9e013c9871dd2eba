// Package eventhandlers reacts to events published by other modules.
package eventhandlers

import (
	"context"
	"log/slog"

	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/events/contracts"
)

const dedupWindow = 1024

// UserEventsHandler sends notifications for user lifecycle events.
//
// Handlers perform side effects and must not run inside a transaction
// scope. The in-memory bus delivers after the scope has committed.
type UserEventsHandler struct {
	logger *slog.Logger
	seen   *seenEvents
}

func NewUserEventsHandler(logger *slog.Logger) *UserEventsHandler {
	return &UserEventsHandler{logger: logger, seen: newSeenEvents(dedupWindow)}
}

// Handle processes UserCreated, UserUpdated and UserDeleted events.
// Other event types are ignored.
func (h *UserEventsHandler) Handle(ctx context.Context, event events.Event) error {
	if !h.seen.markNew(event.EventID()) {
		h.logger.DebugContext(ctx, "skipping duplicate event", slog.String("event_id", event.EventID()))
		return nil
	}

	switch e := event.(type) {
	case contracts.UserCreatedEvent:
		h.logger.InfoContext(ctx, "sending email to user",
			slog.Int64("user_id", e.UserID),
			slog.String("email", e.Email),
			slog.String("action", "welcome"),
		)
	case contracts.UserUpdatedEvent:
		h.logger.InfoContext(ctx, "sending email to user",
			slog.Int64("user_id", e.UserID),
			slog.String("email", e.Email),
			slog.String("action", "profile_updated"),
		)
	case contracts.UserDeletedEvent:
		h.logger.InfoContext(ctx, "notifying admins",
			slog.Int64("user_id", e.UserID),
			slog.String("action", "user_deleted"),
		)
	default:
		h.logger.DebugContext(ctx, "ignoring event", slog.String("event_type", event.EventType().String()))
	}
	return nil
}
