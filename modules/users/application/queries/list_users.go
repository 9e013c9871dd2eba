package queries

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rai/myapp-backend/modules/users/domain"
)

// ListUsersQuery represents a request for every stored user.
type ListUsersQuery struct{}

// ListUsersHandler handles ListUsersQuery.
type ListUsersHandler struct {
	repo domain.UserRepository
}

func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle returns a snapshot of all users in no particular order.
// The result is never nil.
func (h *ListUsersHandler) Handle(ctx context.Context, _ ListUsersQuery) []*domain.User {
	ctx, span := tracer.Start(ctx, "users.ListUsers")
	defer span.End()

	users := h.repo.List(ctx)
	if users == nil {
		users = []*domain.User{}
	}
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users
}
