// Package http provides HTTP handlers for the users module.
// Handlers translate HTTP requests into commands/queries and format responses.
package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rai/myapp-backend/internal/platform/httpserver"
	"github.com/rai/myapp-backend/internal/platform/validation"
	"github.com/rai/myapp-backend/modules/users/application/commands"
	"github.com/rai/myapp-backend/modules/users/application/queries"
	"github.com/rai/myapp-backend/modules/users/domain"
)

// UserSchema is the JSON Schema request bodies are validated against.
//
//go:embed user.schema.json
var UserSchema []byte

var userSchema = validation.MustCompile("user", UserSchema)

// Handler handles HTTP requests for the users module.
type Handler struct {
	saveUser   *commands.SaveUserHandler
	updateUser *commands.UpdateUserHandler
	deleteUser *commands.DeleteUserHandler
	getUser    *queries.GetUserHandler
	listUsers  *queries.ListUsersHandler
	logger     *slog.Logger
}

// Handlers groups the use cases the HTTP adapter drives.
type Handlers struct {
	SaveUser   *commands.SaveUserHandler
	UpdateUser *commands.UpdateUserHandler
	DeleteUser *commands.DeleteUserHandler
	GetUser    *queries.GetUserHandler
	ListUsers  *queries.ListUsersHandler
}

// RegisterRoutes registers the users module routes to the given mux.
func RegisterRoutes(mux *http.ServeMux, handlers Handlers, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		saveUser:   handlers.SaveUser,
		updateUser: handlers.UpdateUser,
		deleteUser: handlers.DeleteUser,
		getUser:    handlers.GetUser,
		listUsers:  handlers.ListUsers,
		logger:     logger,
	}

	mux.HandleFunc("GET /api/users", h.handleListUsers)
	mux.HandleFunc("POST /api/users", h.handleCreateUser)
	mux.HandleFunc("GET /api/users/{id}", h.handleGetUser)
	mux.HandleFunc("PUT /api/users/{id}", h.handleUpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", h.handleDeleteUser)
}

// Request/Response DTOs

// UserRequest is the body of POST and PUT requests.
type UserRequest struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserResponse is the JSON representation of a user record.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.Int64(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// Handlers

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	cmd := commands.SaveUserCommand{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.ID != nil {
		cmd.ID = domain.UserID(*req.ID)
	}

	user, err := h.saveUser.Handle(r.Context(), cmd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, ok := h.getUser.Handle(r.Context(), queries.GetUserQuery{UserID: id})
	if !ok {
		httpserver.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	// The path id wins over any id in the body.
	cmd := commands.UpdateUserCommand{
		UserID: id,
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
	}

	user, found, err := h.updateUser.Handle(r.Context(), cmd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !found {
		httpserver.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	deleted, err := h.deleteUser.Handle(r.Context(), commands.DeleteUserCommand{UserID: id})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !deleted {
		httpserver.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	httpserver.WriteNoContent(w)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.listUsers.Handle(r.Context(), queries.ListUsersQuery{})

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}

	httpserver.WriteJSON(w, http.StatusOK, resp)
}

// decodeUser reads, validates and decodes a user body. On failure it has
// already written the response.
func (h *Handler) decodeUser(w http.ResponseWriter, r *http.Request) (UserRequest, bool) {
	var req UserRequest

	body, err := httpserver.ReadBody(w, r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	if err := userSchema.Validate(body); err != nil {
		h.handleError(w, r, err)
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

// Helper functions

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpserver.WriteErrorDetails(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, validation.ErrMalformedJSON):
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, domain.ErrInvalidUserID):
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		httpserver.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
