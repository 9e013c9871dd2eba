// Package transaction provides transaction scopes for the in-memory stores.
package transaction

import (
	"context"
	"errors"
	"sync"

	"github.com/rai/myapp-backend/modules/shared/transaction"
)

// ErrNestedTransaction is returned when Execute is called from inside a
// function already running in the same scope. The lock is not reentrant, so
// nesting would deadlock.
var ErrNestedTransaction = errors.New("nested transaction detected: lock scope is not reentrant")

// scopeKey marks a context as running inside a particular LockScope.
type scopeKey struct{ scope *LockScope }

// LockScope serialises every function executed through it.
//
// The in-memory repositories are individually safe for concurrent use, but a
// use case that checks and then writes needs both steps to happen without
// another writer in between. Running all writers through one LockScope gives
// that guarantee. Readers do not need to go through the scope.
type LockScope struct {
	mu sync.Mutex
}

// NewLockScope creates a lock scope. Use one scope per store.
func NewLockScope() *LockScope {
	return &LockScope{}
}

// Execute runs fn while holding the scope's lock.
// It fails fast without running fn if ctx is already done.
func (s *LockScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ctx.Value(scopeKey{s}) != nil {
		return ErrNestedTransaction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(context.WithValue(ctx, scopeKey{s}, true))
}

// Compile-time interface check.
var _ transaction.Scope = (*LockScope)(nil)
