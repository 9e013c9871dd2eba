// Package users provides user management functionality.
// This file defines the module's public API - the single interface
// that other modules use to interact with the users bounded context.
package users

import (
	"context"
	"log/slog"
	"net/http"

	platformtx "github.com/rai/myapp-backend/internal/platform/transaction"
	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/transaction"
	"github.com/rai/myapp-backend/modules/users/application/commands"
	"github.com/rai/myapp-backend/modules/users/application/queries"
	"github.com/rai/myapp-backend/modules/users/domain"
	httphandler "github.com/rai/myapp-backend/modules/users/infrastructure/http"
	"github.com/rai/myapp-backend/modules/users/infrastructure/persistence"
)

// Service is the users use-case API.
//
// Absence is reported with a bool. The error results are reserved for
// infrastructure failures such as a cancelled context.
type Service interface {
	// FindAll returns every user in no particular order.
	FindAll(ctx context.Context) []*domain.User
	// FindByID returns the user with the given id, or ok=false.
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, bool)
	// Save stores user, assigning the next id when user.ID is zero.
	// A non-zero id replaces the record stored under it, if any.
	// user.ID is set to the stored id on success.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces every field of the user with the given id and sets
	// user.ID to id. It returns ok=false and stores nothing when the id is
	// unknown.
	Update(ctx context.Context, id domain.UserID, user *domain.User) (*domain.User, bool, error)
	// DeleteByID removes the user with the given id.
	// It returns false when nothing was removed.
	DeleteByID(ctx context.Context, id domain.UserID) (bool, error)
}

// Module is the public API for the users bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (published on every write)
type Module interface {
	Service

	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	EventPublisher events.Publisher
	Logger         *slog.Logger

	// Optional overrides; in-memory implementations are used when nil.
	Repository  domain.UserRepository
	IDGenerator domain.IDGenerator
	TxScope     transaction.Scope

	// SkipSeed starts the module with an empty store.
	SkipSeed bool
}

// module implements the Module interface.
type module struct {
	saveUserHandler   *commands.SaveUserHandler
	updateUserHandler *commands.UpdateUserHandler
	deleteUserHandler *commands.DeleteUserHandler
	getUserHandler    *queries.GetUserHandler
	listUsersHandler  *queries.ListUsersHandler
	logger            *slog.Logger
}

// New creates a new users module with all dependencies wired.
// Unless SkipSeed is set the store starts with the three fixture users.
func New(cfg Config) Module {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("module", "users"))

	repository := cfg.Repository
	if repository == nil {
		repository = persistence.NewInMemoryRepository()
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = persistence.NewSequenceGenerator()
	}
	txScope := cfg.TxScope
	if txScope == nil {
		txScope = platformtx.NewLockScope()
	}

	if !cfg.SkipSeed {
		seeded := persistence.Seed(context.Background(), repository, ids)
		logger.Info("seeded user store", slog.Int("count", len(seeded)))
	}

	// Wire up command handlers
	saveUserHandler := commands.NewSaveUserHandler(repository, ids, txScope, cfg.EventPublisher, logger)
	updateUserHandler := commands.NewUpdateUserHandler(repository, txScope, cfg.EventPublisher, logger)
	deleteUserHandler := commands.NewDeleteUserHandler(repository, txScope, cfg.EventPublisher, logger)

	// Wire up query handlers
	getUserHandler := queries.NewGetUserHandler(repository)
	listUsersHandler := queries.NewListUsersHandler(repository)

	return &module{
		saveUserHandler:   saveUserHandler,
		updateUserHandler: updateUserHandler,
		deleteUserHandler: deleteUserHandler,
		getUserHandler:    getUserHandler,
		listUsersHandler:  listUsersHandler,
		logger:            logger,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, httphandler.Handlers{
		SaveUser:   m.saveUserHandler,
		UpdateUser: m.updateUserHandler,
		DeleteUser: m.deleteUserHandler,
		GetUser:    m.getUserHandler,
		ListUsers:  m.listUsersHandler,
	}, m.logger)
}

func (m *module) FindAll(ctx context.Context) []*domain.User {
	return m.listUsersHandler.Handle(ctx, queries.ListUsersQuery{})
}

func (m *module) FindByID(ctx context.Context, id domain.UserID) (*domain.User, bool) {
	return m.getUserHandler.Handle(ctx, queries.GetUserQuery{UserID: id})
}

func (m *module) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved, err := m.saveUserHandler.Handle(ctx, commands.SaveUserCommand{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		return nil, err
	}
	user.ID = saved.ID
	return saved, nil
}

func (m *module) Update(ctx context.Context, id domain.UserID, user *domain.User) (*domain.User, bool, error) {
	updated, ok, err := m.updateUserHandler.Handle(ctx, commands.UpdateUserCommand{
		UserID: id,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil || !ok {
		return nil, ok, err
	}
	user.ID = id
	return updated, true, nil
}

func (m *module) DeleteByID(ctx context.Context, id domain.UserID) (bool, error) {
	return m.deleteUserHandler.Handle(ctx, commands.DeleteUserCommand{UserID: id})
}
