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

// SaveUserCommand stores a user record.
// A zero ID asks for a new id; a non-zero ID stores the record under that id,
// replacing whatever is there.
type SaveUserCommand struct {
	ID    domain.UserID
	Name  string
	Email string
	Role  string
}

// SaveUserHandler handles the SaveUserCommand.
type SaveUserHandler struct {
	repo      domain.UserRepository
	ids       domain.IDGenerator
	txScope   transaction.Scope
	publisher events.Publisher
	logger    *slog.Logger
}

func NewSaveUserHandler(
	repo domain.UserRepository,
	ids domain.IDGenerator,
	txScope transaction.Scope,
	publisher events.Publisher,
	logger *slog.Logger,
) *SaveUserHandler {
	return &SaveUserHandler{
		repo:      repo,
		ids:       ids,
		txScope:   txScope,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
	}
}

type saveResult struct {
	user    *domain.User
	created bool
}

// Handle executes the save user use case and returns the stored record.
func (h *SaveUserHandler) Handle(ctx context.Context, cmd SaveUserCommand) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "users.SaveUser")
	defer span.End()

	res, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (saveResult, error) {
		user := &domain.User{ID: cmd.ID, Name: cmd.Name, Email: cmd.Email, Role: cmd.Role}
		created := true
		if user.ID.IsZero() {
			user.ID = h.ids.Next()
		} else {
			created = !h.repo.Exists(ctx, user.ID)
		}
		return saveResult{user: h.repo.Insert(ctx, user), created: created}, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("saving user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", res.user.ID.Int64()))

	if res.created {
		h.logger.InfoContext(ctx, "user created", slog.Int64("user_id", res.user.ID.Int64()))
		publish(ctx, h.publisher, h.logger, domain.NewUserCreatedEvent(res.user))
	} else {
		h.logger.InfoContext(ctx, "user replaced", slog.Int64("user_id", res.user.ID.Int64()))
		publish(ctx, h.publisher, h.logger, domain.NewUserUpdatedEvent(res.user))
	}

	return res.user, nil
}
