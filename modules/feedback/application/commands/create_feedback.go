// Package commands contains write use cases for the feedback module.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rai/myapp-backend/modules/feedback/domain"
	"github.com/rai/myapp-backend/modules/shared/events"
)

var tracer = otel.Tracer("github.com/rai/myapp-backend/modules/feedback/application/commands")

// CreateFeedbackCommand represents a visitor leaving feedback.
type CreateFeedbackCommand struct {
	Username string
	Message  string
}

// CreateFeedbackHandler handles the CreateFeedbackCommand.
type CreateFeedbackHandler struct {
	repo      domain.FeedbackRepository
	ids       domain.IDGenerator
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewCreateFeedbackHandler(
	repo domain.FeedbackRepository,
	ids domain.IDGenerator,
	publisher events.Publisher,
	logger *slog.Logger,
) *CreateFeedbackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateFeedbackHandler{
		repo:      repo,
		ids:       ids,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for CreatedAt.
func (h *CreateFeedbackHandler) WithClock(now func() time.Time) *CreateFeedbackHandler {
	h.now = now
	return h
}

// Handle executes the create feedback use case.
func (h *CreateFeedbackHandler) Handle(ctx context.Context, cmd CreateFeedbackCommand) (*domain.Feedback, error) {
	ctx, span := tracer.Start(ctx, "feedback.CreateFeedback")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fb, err := domain.NewFeedback(cmd.Username, cmd.Message, h.now())
	if err != nil {
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}
	fb.ID = h.ids.Next()

	stored := h.repo.Insert(ctx, fb)
	span.SetAttributes(attribute.Int64("feedback.id", stored.ID.Int64()))

	h.logger.InfoContext(ctx, "feedback created",
		slog.Int64("feedback_id", stored.ID.Int64()),
		slog.String("username", stored.Username),
	)

	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, domain.NewFeedbackCreatedEvent(stored)); err != nil {
			h.logger.WarnContext(ctx, "failed to publish event", slog.Any("error", err))
		}
	}

	return stored, nil
}
