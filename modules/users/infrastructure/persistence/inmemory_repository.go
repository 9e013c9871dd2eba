// Package persistence implements the users repository port.
// Records live in process memory only and are lost on restart.
package persistence

import (
	"context"
	"sync"

	"github.com/rai/myapp-backend/modules/users/domain"
)

// InMemoryRepository implements UserRepository using a mutex-guarded map.
// Records are stored by value, so nothing handed in or out aliases the map.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[domain.UserID]domain.User),
	}
}

// Compile-time interface check.
var _ domain.UserRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Insert(ctx context.Context, user *domain.User) *domain.User {
	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()

	return user.Clone()
}

func (r *InMemoryRepository) Get(ctx context.Context, id domain.UserID) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, false
	}
	return &user, true
}

func (r *InMemoryRepository) List(ctx context.Context) []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, &user)
	}
	return users
}

func (r *InMemoryRepository) Remove(ctx context.Context, id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *InMemoryRepository) Exists(ctx context.Context, id domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok
}
