package domain

import (
	"context"
)

// UserRepository is the store for user records.
// This is a port - defined in domain, implemented in infrastructure.
//
// Absence is a normal outcome: lookups return ok=false and removals of
// unknown ids are no-ops. Implementations must be safe for concurrent use
// and hand out copies, so callers can never mutate stored records.
type UserRepository interface {
	// Insert stores user under user.ID, replacing any record already there.
	// The ID must already be assigned. Returns a copy of the stored record.
	Insert(ctx context.Context, user *User) *User

	// Get returns the record with the given id, or ok=false.
	Get(ctx context.Context, id UserID) (user *User, ok bool)

	// List returns a snapshot of all records in no particular order.
	List(ctx context.Context) []*User

	// Remove deletes the record with the given id if present.
	Remove(ctx context.Context, id UserID)

	// Exists reports whether a record with the given id is stored.
	Exists(ctx context.Context, id UserID) bool
}

// IDGenerator hands out user ids.
// Ids are strictly increasing, start at 1 and are never handed out twice.
type IDGenerator interface {
	Next() UserID
}
