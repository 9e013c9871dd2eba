package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rai/myapp-backend/internal/platform/httpserver"
	"github.com/rai/myapp-backend/internal/platform/logging"
	"github.com/rai/myapp-backend/internal/platform/validation"
	"github.com/rai/myapp-backend/modules/users"
	userhttp "github.com/rai/myapp-backend/modules/users/infrastructure/http"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	users.New(users.Config{Logger: logging.Nop()}).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListUsers(t *testing.T) {
	rec := do(t, newMux(t), http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	list := decode[[]userhttp.UserResponse](t, rec)
	assert.ElementsMatch(t, []userhttp.UserResponse{
		{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Role: "Developer"},
		{ID: 2, Name: "Bob Smith", Email: "bob@example.com", Role: "Designer"},
		{ID: 3, Name: "Charlie Brown", Email: "charlie@example.com", Role: "Manager"},
	}, list)
}

func TestGetUser(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/api/users/2", http.StatusOK},
		{"not found", "/api/users/99", http.StatusNotFound},
		{"non numeric", "/api/users/abc", http.StatusBadRequest},
		{"zero", "/api/users/0", http.StatusNotFound},
		{"negative", "/api/users/-1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := do(t, mux, http.MethodGet, "/api/users/2", "")
	assert.Equal(t, userhttp.UserResponse{ID: 2, Name: "Bob Smith", Email: "bob@example.com", Role: "Designer"},
		decode[userhttp.UserResponse](t, rec))
}

func TestCreateUser(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, http.MethodPost, "/api/users", `{"name":"Dana","email":"dana@x.com","role":"QA"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[userhttp.UserResponse](t, rec)
	assert.Equal(t, userhttp.UserResponse{ID: 4, Name: "Dana", Email: "dana@x.com", Role: "QA"}, created)

	rec = do(t, mux, http.MethodGet, "/api/users/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateUser_WithoutRole(t *testing.T) {
	rec := do(t, newMux(t), http.MethodPost, "/api/users", `{"name":"Dana","email":"dana@x.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Empty(t, decode[userhttp.UserResponse](t, rec).Role)
}

func TestCreateUser_ExplicitIDUpserts(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, http.MethodPost, "/api/users", `{"id":1,"name":"Alice J.","email":"aj@x.com","role":"Dev"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(1), decode[userhttp.UserResponse](t, rec).ID)

	rec = do(t, mux, http.MethodGet, "/api/users", "")
	assert.Len(t, decode[[]userhttp.UserResponse](t, rec), 3)
}

func TestCreateUser_Invalid(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{"empty name", `{"name":"","email":"dana@x.com"}`, []string{"name"}},
		{"blank name", `{"name":"   ","email":"dana@x.com"}`, []string{"name"}},
		{"bad email", `{"name":"Dana","email":"nope"}`, []string{"email"}},
		{"missing email", `{"name":"Dana"}`, []string{""}},
		{"negative id", `{"id":-5,"name":"Dana","email":"dana@x.com"}`, []string{"id"}},
		{"wrong type", `{"name":42,"email":"dana@x.com"}`, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPost, "/api/users", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error   string                  `json:"error"`
				Details []validation.FieldError `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation failed", resp.Error)

			var fields []string
			for _, d := range resp.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}

	rec := do(t, mux, http.MethodGet, "/api/users", "")
	assert.Len(t, decode[[]userhttp.UserResponse](t, rec), 3, "invalid requests must not store anything")
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	rec := do(t, newMux(t), http.MethodPost, "/api/users", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decode[httpserver.ErrorResponse](t, rec).Error)
}

func TestUpdateUser(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, http.MethodPut, "/api/users/2", `{"name":"Robert Smith","email":"rob@example.com","role":"Lead"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	want := userhttp.UserResponse{ID: 2, Name: "Robert Smith", Email: "rob@example.com", Role: "Lead"}
	assert.Equal(t, want, decode[userhttp.UserResponse](t, rec))

	rec = do(t, mux, http.MethodGet, "/api/users/2", "")
	assert.Equal(t, want, decode[userhttp.UserResponse](t, rec))
}

func TestUpdateUser_PathIDWins(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, http.MethodPut, "/api/users/2", `{"id":3,"name":"Robert","email":"rob@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[userhttp.UserResponse](t, rec).ID)

	rec = do(t, mux, http.MethodGet, "/api/users/3", "")
	assert.Equal(t, "Charlie Brown", decode[userhttp.UserResponse](t, rec).Name)
}

func TestUpdateUser_Errors(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"not found", "/api/users/99", `{"name":"X","email":"x@x.com"}`, http.StatusNotFound},
		{"zero id", "/api/users/0", `{"name":"X","email":"x@x.com"}`, http.StatusNotFound},
		{"negative id", "/api/users/-1", `{"name":"X","email":"x@x.com"}`, http.StatusNotFound},
		{"bad id", "/api/users/abc", `{"name":"X","email":"x@x.com"}`, http.StatusBadRequest},
		{"invalid body", "/api/users/1", `{"name":"","email":"x@x.com"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := do(t, mux, http.MethodGet, "/api/users", "")
	assert.Len(t, decode[[]userhttp.UserResponse](t, rec), 3)
}

func TestDeleteUser(t *testing.T) {
	mux := newMux(t)

	rec := do(t, mux, http.MethodDelete, "/api/users/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, mux, http.MethodGet, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/users/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Ids no record can carry are still just absent.
	for _, path := range []string{"/api/users/0", "/api/users/-1"} {
		rec = do(t, mux, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec = do(t, mux, http.MethodGet, "/api/users", "")
	assert.Len(t, decode[[]userhttp.UserResponse](t, rec), 2)
}

func TestWrite_CancelledContextIsServerError(t *testing.T) {
	mux := newMux(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode[httpserver.ErrorResponse](t, rec).Error)
}
