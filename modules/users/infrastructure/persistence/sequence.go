package persistence

import (
	"github.com/rai/myapp-backend/modules/shared/types"
	"github.com/rai/myapp-backend/modules/users/domain"
)

// SequenceGenerator implements IDGenerator with an atomic 64-bit counter.
// The first id is 1. Ids discarded by a failed save are not reused.
type SequenceGenerator struct {
	seq types.Sequence
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Compile-time interface check.
var _ domain.IDGenerator = (*SequenceGenerator)(nil)

func (g *SequenceGenerator) Next() domain.UserID {
	return domain.UserID(g.seq.Next())
}
