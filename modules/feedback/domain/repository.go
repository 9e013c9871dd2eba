package domain

import "context"

// Filter narrows a feedback listing. An empty Username matches everyone.
type Filter struct {
	Username string
}

func (f Filter) Matches(fb *Feedback) bool {
	return f.Username == "" || fb.Username == f.Username
}

// FeedbackRepository stores feedback entries.
// Implementations must be safe for concurrent use and return copies.
type FeedbackRepository interface {
	// Insert stores fb under fb.ID, which must already be assigned.
	Insert(ctx context.Context, fb *Feedback) *Feedback
	// Find returns the entries matching filter, newest first.
	Find(ctx context.Context, filter Filter) []*Feedback
	// Count returns the number of stored entries.
	Count(ctx context.Context) int
}

// IDGenerator hands out feedback ids, starting at 1.
type IDGenerator interface {
	Next() FeedbackID
}
