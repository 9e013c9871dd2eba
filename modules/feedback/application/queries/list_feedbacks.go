// Package queries contains read use cases for the feedback module.
package queries

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rai/myapp-backend/modules/feedback/domain"
)

var tracer = otel.Tracer("github.com/rai/myapp-backend/modules/feedback/application/queries")

// ListFeedbacksQuery asks for one page of feedback, newest first.
type ListFeedbacksQuery struct {
	Username string
	Page     int
	Size     int
}

// ListFeedbacksHandler handles ListFeedbacksQuery.
type ListFeedbacksHandler struct {
	repo domain.FeedbackRepository
}

func NewListFeedbacksHandler(repo domain.FeedbackRepository) *ListFeedbacksHandler {
	return &ListFeedbacksHandler{repo: repo}
}

// Handle returns the requested page. It fails with ErrInvalidPage or
// ErrInvalidPageSize for out-of-range paging.
func (h *ListFeedbacksHandler) Handle(ctx context.Context, query ListFeedbacksQuery) (domain.Page[*domain.Feedback], error) {
	ctx, span := tracer.Start(ctx, "feedback.ListFeedbacks")
	defer span.End()

	req := domain.PageRequest{Page: query.Page, Size: query.Size}
	if err := req.Validate(); err != nil {
		return domain.Page[*domain.Feedback]{}, err
	}

	matching := h.repo.Find(ctx, domain.Filter{Username: query.Username})
	page := domain.NewPage(matching, req)

	span.SetAttributes(
		attribute.Int("feedback.page", page.Number),
		attribute.Int("feedback.total", page.TotalElements),
	)
	return page, nil
}
