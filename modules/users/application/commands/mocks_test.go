package commands_test

import (
	"context"
	"sync"

	"github.com/rai/myapp-backend/modules/shared/events"
	"github.com/rai/myapp-backend/modules/users/domain"
)

// --- Mocks ---

type mockUserRepository struct {
	insertFn func(ctx context.Context, user *domain.User) *domain.User
	getFn    func(ctx context.Context, id domain.UserID) (*domain.User, bool)
	listFn   func(ctx context.Context) []*domain.User
	removeFn func(ctx context.Context, id domain.UserID)
	existsFn func(ctx context.Context, id domain.UserID) bool
}

func (m *mockUserRepository) Insert(ctx context.Context, user *domain.User) *domain.User {
	return m.insertFn(ctx, user)
}

func (m *mockUserRepository) Get(ctx context.Context, id domain.UserID) (*domain.User, bool) {
	return m.getFn(ctx, id)
}

func (m *mockUserRepository) List(ctx context.Context) []*domain.User {
	return m.listFn(ctx)
}

func (m *mockUserRepository) Remove(ctx context.Context, id domain.UserID) {
	m.removeFn(ctx, id)
}

func (m *mockUserRepository) Exists(ctx context.Context, id domain.UserID) bool {
	return m.existsFn(ctx, id)
}

type mockIDGenerator struct {
	nextFn func() domain.UserID
}

func (m *mockIDGenerator) Next() domain.UserID { return m.nextFn() }

type mockTransactionScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

func passthroughScope() *mockTransactionScope {
	return &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return m.err
}

func (m *mockPublisher) publishedEvents() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.published...)
}

// copyingInsert mimics a real store: it returns a copy of what was stored.
func copyingInsert(stored *[]*domain.User) func(ctx context.Context, user *domain.User) *domain.User {
	return func(ctx context.Context, user *domain.User) *domain.User {
		*stored = append(*stored, user.Clone())
		return user.Clone()
	}
}
