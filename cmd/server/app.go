package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rai/myapp-backend/internal/platform/apidocs"
	"github.com/rai/myapp-backend/internal/platform/config"
	"github.com/rai/myapp-backend/internal/platform/eventbus"
	"github.com/rai/myapp-backend/internal/platform/httpserver"
	"github.com/rai/myapp-backend/modules/feedback"
	"github.com/rai/myapp-backend/modules/health"
	"github.com/rai/myapp-backend/modules/notifications"
	"github.com/rai/myapp-backend/modules/users"
)

// app is the fully wired application.
type app struct {
	handler http.Handler
	docs    *apidocs.Document
	users   users.Module
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	// Initialize event bus (for inter-module communication)
	eventBus := eventbus.New(logger)

	// Subscribers first, so no event published during wiring is missed.
	_ = notifications.New(notifications.Config{
		EventSubscriber: eventBus,
		Logger:          logger,
	})

	usersModule := users.New(users.Config{
		EventPublisher: eventBus,
		Logger:         logger,
	})
	feedbackModule := feedback.New(feedback.Config{
		EventPublisher: eventBus,
		Logger:         logger,
	})
	healthModule := health.New(health.Config{
		Service: cfg.Service.Name,
		Version: cfg.Service.Version,
		Logger:  logger,
	})

	docs, err := apidocs.Load(ctx, cfg.Service.Version)
	if err != nil {
		return nil, err
	}

	router := buildRouter(cfg.Service, healthModule, docs, usersModule, feedbackModule)

	middlewares := []httpserver.MiddlewareFunc{
		httpserver.Recovery(logger),
		httpserver.RequestID(),
		httpserver.Tracing(),
		httpserver.Logging(logger),
		httpserver.CORS(cfg.CORS.AllowedOrigins),
	}
	if cfg.Server.ValidateRequests {
		middlewares = append(middlewares, docs.RequestValidation(logger))
	}

	return &app{
		handler: httpserver.Middleware(router, middlewares...),
		docs:    docs,
		users:   usersModule,
	}, nil
}

// routeRegistrar is implemented by every module with an HTTP surface.
type routeRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// buildRouter creates the main HTTP router with all module handlers.
func buildRouter(service config.ServiceConfig, modules ...routeRegistrar) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteJSON(w, http.StatusOK, map[string]string{
			"service": service.Name,
			"version": service.Version,
		})
	})

	// Each module registers its own routes (same pattern as event subscriptions)
	for _, m := range modules {
		m.RegisterRoutes(mux)
	}

	return mux
}
