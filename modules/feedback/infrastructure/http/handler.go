// Package http provides HTTP handlers for the feedback module.
// Every response is wrapped in the ApiResponse envelope.
package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rai/myapp-backend/internal/platform/httpserver"
	"github.com/rai/myapp-backend/internal/platform/validation"
	"github.com/rai/myapp-backend/modules/feedback/application/commands"
	"github.com/rai/myapp-backend/modules/feedback/application/queries"
	"github.com/rai/myapp-backend/modules/feedback/domain"
)

// FeedbackSchema is the JSON Schema create requests are validated against.
//
//go:embed feedback.schema.json
var FeedbackSchema []byte

var feedbackSchema = validation.MustCompile("feedback", FeedbackSchema)

// Handler handles HTTP requests for the feedback module.
type Handler struct {
	createFeedback *commands.CreateFeedbackHandler
	listFeedbacks  *queries.ListFeedbacksHandler
	logger         *slog.Logger
}

// RegisterRoutes registers the feedback module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createFeedback *commands.CreateFeedbackHandler,
	listFeedbacks *queries.ListFeedbacksHandler,
	logger *slog.Logger,
) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		createFeedback: createFeedback,
		listFeedbacks:  listFeedbacks,
		logger:         logger,
	}

	mux.HandleFunc("POST /api/feedbacks", h.handleCreateFeedback)
	mux.HandleFunc("GET /api/feedbacks", h.handleListFeedbacks)
}

// Request/Response DTOs

// ApiResponse is the envelope around every feedback response.
type ApiResponse[T any] struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Data    T                       `json:"data,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// FeedbackCreateRequest is the body of POST /api/feedbacks.
type FeedbackCreateRequest struct {
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

// FeedbackResponse is the JSON representation of a feedback entry.
type FeedbackResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// PageResponse is one page of a listing.
type PageResponse[T any] struct {
	Content       []T  `json:"content"`
	CurrentPage   int  `json:"currentPage"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

func toFeedbackResponse(fb *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        fb.ID.Int64(),
		Username:  fb.Username,
		Message:   fb.Message,
		CreatedAt: fb.CreatedAt,
	}
}

func toPageResponse(page domain.Page[*domain.Feedback]) PageResponse[FeedbackResponse] {
	content := make([]FeedbackResponse, 0, len(page.Content))
	for _, fb := range page.Content {
		content = append(content, toFeedbackResponse(fb))
	}
	return PageResponse[FeedbackResponse]{
		Content:       content,
		CurrentPage:   page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
		First:         page.IsFirst(),
		Last:          page.IsLast(),
	}
}

// Handlers

func (h *Handler) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	body, err := httpserver.ReadBody(w, r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := feedbackSchema.Validate(body); err != nil {
		h.handleError(w, r, err)
		return
	}

	var req FeedbackCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	fb, err := h.createFeedback.Handle(r.Context(), commands.CreateFeedbackCommand{
		Username: req.Username,
		Message:  req.Message,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusCreated, ApiResponse[FeedbackResponse]{
		Success: true,
		Data:    toFeedbackResponse(fb),
	})
}

func (h *Handler) handleListFeedbacks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := intParam(w, q.Get("page"), 0, "page")
	if !ok {
		return
	}
	size, ok := intParam(w, q.Get("size"), domain.DefaultPageSize, "size")
	if !ok {
		return
	}

	result, err := h.listFeedbacks.Handle(r.Context(), queries.ListFeedbacksQuery{
		Username: q.Get("username"),
		Page:     page,
		Size:     size,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, ApiResponse[PageResponse[FeedbackResponse]]{
		Success: true,
		Data:    toPageResponse(result),
	})
}

// Helper functions

func intParam(w http.ResponseWriter, raw string, def int, name string) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, name+" must be an integer", nil)
		return 0, false
	}
	return n, true
}

func writeFailure(w http.ResponseWriter, status int, message string, fields []validation.FieldError) {
	httpserver.WriteJSON(w, status, ApiResponse[any]{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// badRequest lists the domain errors reported to the client as 400s.
var badRequest = []error{
	domain.ErrMessageRequired,
	domain.ErrMessageTooLong,
	domain.ErrUsernameTooLong,
	domain.ErrInvalidPage,
	domain.ErrInvalidPageSize,
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeFailure(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	case errors.Is(err, validation.ErrMalformedJSON):
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	for _, target := range badRequest {
		if errors.Is(err, target) {
			writeFailure(w, http.StatusBadRequest, target.Error(), nil)
			return
		}
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeFailure(w, http.StatusInternalServerError, "internal server error", nil)
}
