// Package eventbus provides an in-memory event bus for inter-module communication.
// Events never leave the process, which matches the in-memory stores.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rai/myapp-backend/modules/shared/events"
)

// InMemoryEventBus implements a simple synchronous event bus.
// Events are delivered synchronously in the publishing goroutine, in
// subscription order.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]events.Handler
	logger   *slog.Logger
}

func New(logger *slog.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[events.EventType][]events.Handler),
		logger:   logger,
	}
}

// Publish implements events.Publisher.
// A failing handler is logged and does not stop delivery to the others.
func (b *InMemoryEventBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	b.logger.Debug("publishing event",
		slog.String("event_type", event.EventType().String()),
		slog.String("event_id", event.EventID()),
		slog.Int("handler_count", len(handlers)),
	)

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				slog.String("event_type", event.EventType().String()),
				slog.String("event_id", event.EventID()),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// Subscribe implements events.Subscriber.
func (b *InMemoryEventBus) Subscribe(eventType events.EventType, handler events.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Copy on write so Publish can iterate a snapshot without holding the lock.
	current := b.handlers[eventType]
	next := make([]events.Handler, len(current), len(current)+1)
	copy(next, current)
	b.handlers[eventType] = append(next, handler)

	b.logger.Debug("subscribed to event", slog.String("event_type", eventType.String()))
	return nil
}

// HandlerFunc is an adapter to use ordinary functions as event handlers.
type HandlerFunc func(ctx context.Context, event events.Event) error

func (f HandlerFunc) Handle(ctx context.Context, event events.Event) error {
	return f(ctx, event)
}

// Compile-time interface checks.
var (
	_ events.Publisher  = (*InMemoryEventBus)(nil)
	_ events.Subscriber = (*InMemoryEventBus)(nil)
)
