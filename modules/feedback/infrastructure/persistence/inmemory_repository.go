// Package persistence implements the feedback repository port in memory.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/rai/myapp-backend/modules/feedback/domain"
	"github.com/rai/myapp-backend/modules/shared/types"
)

// InMemoryRepository implements FeedbackRepository using a mutex-guarded map.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[domain.FeedbackID]domain.Feedback
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		entries: make(map[domain.FeedbackID]domain.Feedback),
	}
}

// Compile-time interface check.
var _ domain.FeedbackRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Insert(ctx context.Context, fb *domain.Feedback) *domain.Feedback {
	stored := *fb

	r.mu.Lock()
	r.entries[stored.ID] = stored
	r.mu.Unlock()

	return &stored
}

func (r *InMemoryRepository) Find(ctx context.Context, filter domain.Filter) []*domain.Feedback {
	r.mu.RLock()
	out := make([]*domain.Feedback, 0, len(r.entries))
	for _, fb := range r.entries {
		if filter.Matches(&fb) {
			out = append(out, &fb)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].NewerThan(out[j])
	})
	return out
}

func (r *InMemoryRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SequenceGenerator implements IDGenerator with an atomic counter.
type SequenceGenerator struct {
	seq types.Sequence
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Compile-time interface check.
var _ domain.IDGenerator = (*SequenceGenerator)(nil)

func (g *SequenceGenerator) Next() domain.FeedbackID {
	return domain.FeedbackID(g.seq.Next())
}
