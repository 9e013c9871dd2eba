// Package queries contains read use cases for the users module.
// Queries return data and don't change state (CQRS pattern).
package queries

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rai/myapp-backend/modules/users/domain"
)

var tracer = otel.Tracer("github.com/rai/myapp-backend/modules/users/application/queries")

// GetUserQuery represents a request to get a user by ID.
type GetUserQuery struct {
	UserID domain.UserID
}

// GetUserHandler handles GetUserQuery.
type GetUserHandler struct {
	repo domain.UserRepository
}

func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query. ok is false when the id is unknown.
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*domain.User, bool) {
	ctx, span := tracer.Start(ctx, "users.GetUser")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", query.UserID.Int64()))

	user, ok := h.repo.Get(ctx, query.UserID)
	span.SetAttributes(attribute.Bool("user.found", ok))
	return user, ok
}
