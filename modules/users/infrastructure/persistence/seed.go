package persistence

import (
	"context"

	"github.com/rai/myapp-backend/modules/users/domain"
)

// SeedUsers returns the fixture records loaded at startup, without ids.
func SeedUsers() []*domain.User {
	return []*domain.User{
		domain.NewUser("Alice Johnson", "alice@example.com", "Developer"),
		domain.NewUser("Bob Smith", "bob@example.com", "Designer"),
		domain.NewUser("Charlie Brown", "charlie@example.com", "Manager"),
	}
}

// Seed inserts the fixture records, assigning ids from ids in order.
// On a fresh generator they get ids 1, 2 and 3.
func Seed(ctx context.Context, repo domain.UserRepository, ids domain.IDGenerator) []*domain.User {
	seeded := make([]*domain.User, 0, 3)
	for _, user := range SeedUsers() {
		user.ID = ids.Next()
		seeded = append(seeded, repo.Insert(ctx, user))
	}
	return seeded
}
