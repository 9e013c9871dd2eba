package commands

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/shared/transaction"
	"github.com/rai/myapp-backend/modules/users/domain"
)

// UpdateUserCommand replaces every field of an existing user record.
type UpdateUserCommand struct {
	UserID domain.UserID
	Name   string
	Email  string
	Role   string
}

// UpdateUserHandler handles the UpdateUserCommand.
type UpdateUserHandler struct {
	repo      domain.UserRepository
	txScope   transaction.Scope
	publisher events.Publisher
	logger    *slog.Logger
}

func NewUpdateUserHandler(
	repo domain.UserRepository,
	txScope transaction.Scope,
	publisher events.Publisher,
	logger *slog.Logger,
) *UpdateUserHandler {
	return &UpdateUserHandler{
		repo:      repo,
		txScope:   txScope,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
	}
}

// Handle executes the update user use case.
// It returns ok=false, and stores nothing, when no record has the given id.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, bool, error) {
	ctx, span := tracer.Start(ctx, "users.UpdateUser")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", cmd.UserID.Int64()))

	updated, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.User, error) {
		if !h.repo.Exists(ctx, cmd.UserID) {
			return nil, nil
		}
		user := &domain.User{ID: cmd.UserID, Name: cmd.Name, Email: cmd.Email, Role: cmd.Role}
		return h.repo.Insert(ctx, user), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("updating user: %w", err)
	}
	if updated == nil {
		h.logger.DebugContext(ctx, "update of unknown user", slog.Int64("user_id", cmd.UserID.Int64()))
		return nil, false, nil
	}

	h.logger.InfoContext(ctx, "user updated", slog.Int64("user_id", updated.ID.Int64()))
	publish(ctx, h.publisher, h.logger, domain.NewUserUpdatedEvent(updated))

	return updated, true, nil
}
