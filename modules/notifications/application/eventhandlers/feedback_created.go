package eventhandlers

import (
	"context"
	"log/slog"

	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/events/contracts"
)

// FeedbackCreatedHandler tells the team that new feedback arrived.
type FeedbackCreatedHandler struct {
	logger *slog.Logger
	seen   *seenEvents
}

func NewFeedbackCreatedHandler(logger *slog.Logger) *FeedbackCreatedHandler {
	return &FeedbackCreatedHandler{logger: logger, seen: newSeenEvents(dedupWindow)}
}

func (h *FeedbackCreatedHandler) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(contracts.FeedbackCreatedEvent)
	if !ok || !h.seen.markNew(event.EventID()) {
		return nil
	}

	h.logger.InfoContext(ctx, "notifying team",
		slog.Int64("feedback_id", e.FeedbackID),
		slog.String("username", e.Username),
		slog.String("action", "feedback_received"),
	)
	return nil
}
