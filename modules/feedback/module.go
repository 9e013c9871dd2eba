// Package feedback lets visitors leave short messages and lists them back,
// newest first, one page at a time.
package feedback

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rai/myapp-backend/modules/feedback/application/commands"
	"github.com/rai/myapp-backend/modules/feedback/application/queries"
	httphandler "github.com/rai/myapp-backend/modules/feedback/infrastructure/http"
	"github.com/rai/myapp-backend/modules/feedback/infrastructure/persistence"
	"github.com/rai/myapp-backend/modules/shared/events"
)

// Module is the public API for the feedback module.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	EventPublisher events.Publisher
	Logger         *slog.Logger
	// Clock overrides the time source for CreatedAt. Defaults to time.Now in UTC.
	Clock func() time.Time
}

type module struct {
	createFeedbackHandler *commands.CreateFeedbackHandler
	listFeedbacksHandler  *queries.ListFeedbacksHandler
	logger                *slog.Logger
}

// New creates a new feedback module with an empty in-memory store.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("module", "feedback"))

	repository := persistence.NewInMemoryRepository()
	ids := persistence.NewSequenceGenerator()

	createFeedbackHandler := commands.NewCreateFeedbackHandler(repository, ids, cfg.EventPublisher, logger)
	if cfg.Clock != nil {
		createFeedbackHandler.WithClock(cfg.Clock)
	}

	return &module{
		createFeedbackHandler: createFeedbackHandler,
		listFeedbacksHandler:  queries.NewListFeedbacksHandler(repository),
		logger:                logger,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.createFeedbackHandler, m.listFeedbacksHandler, m.logger)
}
