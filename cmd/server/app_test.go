package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rai/myapp-backend/internal/platform/config"
	"github.com/rai/myapp-backend/internal/platform/httpserver"
	"github.com/rai/myapp-backend/internal/platform/logging"
)

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *app {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	a, err := newApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	return a
}

func request(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestApp_ResponsesMatchAPIDocument drives every documented operation and
// checks each response against the OpenAPI document.
func TestApp_ResponsesMatchAPIDocument(t *testing.T) {
	a := newTestApp(t)

	steps := []struct {
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/detail", "", http.StatusOK},
		{http.MethodGet, "/api", "", http.StatusOK},
		{http.MethodGet, "/api-docs", "", http.StatusOK},
		{http.MethodGet, "/api/users", "", http.StatusOK},
		{http.MethodGet, "/api/users/1", "", http.StatusOK},
		{http.MethodGet, "/api/users/99", "", http.StatusNotFound},
		{http.MethodGet, "/api/users/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/api/users/0", "", http.StatusNotFound},
		{http.MethodDelete, "/api/users/-1", "", http.StatusNotFound},
		{http.MethodPost, "/api/users", `{"name":"Dana","email":"dana@x.com","role":"QA"}`, http.StatusCreated},
		{http.MethodPost, "/api/users", `{"name":"","email":"bad"}`, http.StatusBadRequest},
		{http.MethodPut, "/api/users/4", `{"name":"Dana B","email":"dana@x.com"}`, http.StatusOK},
		{http.MethodPut, "/api/users/99", `{"name":"X","email":"x@x.com"}`, http.StatusNotFound},
		{http.MethodDelete, "/api/users/2", "", http.StatusNoContent},
		{http.MethodDelete, "/api/users/2", "", http.StatusNotFound},
		{http.MethodPost, "/api/feedbacks", `{"username":"kim","message":"nice"}`, http.StatusCreated},
		{http.MethodPost, "/api/feedbacks", `{"message":""}`, http.StatusBadRequest},
		{http.MethodGet, "/api/feedbacks?page=0&size=10", "", http.StatusOK},
		{http.MethodGet, "/api/feedbacks?username=kim", "", http.StatusOK},
		{http.MethodGet, "/api/feedbacks?page=-1", "", http.StatusBadRequest},
	}

	for _, s := range steps {
		name := fmt.Sprintf("%s %s", s.method, s.target)
		req := request(s.method, s.target, s.body)
		rec := httptest.NewRecorder()

		a.handler.ServeHTTP(rec, req)

		require.Equal(t, s.wantStatus, rec.Code, "%s: %s", name, rec.Body.String())
		assert.NoError(t, a.docs.ValidateResponse(req, rec.Code, rec.Header(), rec.Body.Bytes()), name)
	}
}

func TestApp_SeededScenario(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodPost, "/api/users", `{"name":"Dana","email":"dana@x.com","role":"QA"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(4), created.ID)

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodDelete, "/api/users/2", ""))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Len(t, a.users.FindAll(context.Background()), 3)
	_, ok := a.users.FindByID(context.Background(), 2)
	assert.False(t, ok)
}

func TestApp_Version(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.Service.Version = "2.3.4" })

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodGet, "/api", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"myapp-backend","version":"2.3.4"}`, rec.Body.String())
}

func TestApp_Middleware(t *testing.T) {
	a := newTestApp(t)

	req := request(http.MethodOptions, "/api/users", "")
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(httpserver.RequestIDHeader))

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodGet, "/nowhere", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_ValidateRequests(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.Server.ValidateRequests = true })

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodGet, "/api/feedbacks?size=500", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "API document")

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodPost, "/api/users", `{"name":"Dana","email":"dana@x.com"}`))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, request(http.MethodGet, "/api/users/-1", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_StartsAndStops(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.ShutdownTimeout = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, logging.Nop(), ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"UP"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestOpenAPICommand(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out []byte)
	}{
		{"yaml", func(t *testing.T, out []byte) {
			var doc map[string]any
			require.NoError(t, yaml.Unmarshal(out, &doc))
			assert.Equal(t, "3.0.3", doc["openapi"])
		}},
		{"json", func(t *testing.T, out []byte) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal(out, &doc))
			assert.Equal(t, "3.0.3", doc["openapi"])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"openapi", "--format", tt.format})

			require.NoError(t, cmd.Execute())
			tt.check(t, out.Bytes())
		})
	}
}

func TestOpenAPICommand_UsesConfiguredVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  version: 7.0.0\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"openapi", "--config", path, "--format", "json"})

	require.NoError(t, cmd.Execute())

	var doc struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "7.0.0", doc.Info.Version)
}

func TestOpenAPICommand_UnknownFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"openapi", "--format", "xml"})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--port", "0"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, config.ErrInvalidPort)
}
