// Package commands contains write use cases for the users module.
// Every command runs inside a transaction scope and publishes a domain event
// once the scope has committed.
package commands

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/rai/myapp-backend/modules/shared/events"
)

var tracer = otel.Tracer("github.com/rai/myapp-backend/modules/users/application/commands")

// publish hands event to the publisher, if any. Failures are logged only:
// the write has already been committed.
func publish(ctx context.Context, publisher events.Publisher, logger *slog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			slog.String("event_type", event.EventType().String()),
			slog.String("event_id", event.EventID()),
			slog.Any("error", err),
		)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
