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

// DeleteUserCommand removes a user record.
type DeleteUserCommand struct {
	UserID domain.UserID
}

// DeleteUserHandler handles the DeleteUserCommand.
type DeleteUserHandler struct {
	repo      domain.UserRepository
	txScope   transaction.Scope
	publisher events.Publisher
	logger    *slog.Logger
}

func NewDeleteUserHandler(
	repo domain.UserRepository,
	txScope transaction.Scope,
	publisher events.Publisher,
	logger *slog.Logger,
) *DeleteUserHandler {
	return &DeleteUserHandler{
		repo:      repo,
		txScope:   txScope,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
	}
}

// Handle executes the delete user use case.
// It returns false when no record had the given id.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (bool, error) {
	ctx, span := tracer.Start(ctx, "users.DeleteUser")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", cmd.UserID.Int64()))

	deleted, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (bool, error) {
		if !h.repo.Exists(ctx, cmd.UserID) {
			return false, nil
		}
		h.repo.Remove(ctx, cmd.UserID)
		return true, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("deleting user: %w", err)
	}
	if !deleted {
		h.logger.DebugContext(ctx, "delete of unknown user", slog.Int64("user_id", cmd.UserID.Int64()))
		return false, nil
	}

	h.logger.InfoContext(ctx, "user deleted", slog.Int64("user_id", cmd.UserID.Int64()))
	publish(ctx, h.publisher, h.logger, domain.NewUserDeletedEvent(cmd.UserID))

	return true, nil
}
