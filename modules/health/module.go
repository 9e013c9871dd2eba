// Package health serves liveness and runtime information endpoints.
package health

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/rai/myapp-backend/internal/platform/httpserver"
)

const StatusUp = "UP"

// Module is the public API for the health module.
type Module interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Service string
	Version string
	Logger  *slog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Response is the body of GET /health.
type Response struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// SystemInfo describes the running process. Memory figures are whole
// mebibytes rendered as "<n> MB".
type SystemInfo struct {
	TotalMemory string `json:"totalMemory"`
	FreeMemory  string `json:"freeMemory"`
	MaxMemory   string `json:"maxMemory"`
	Processors  int    `json:"processors"`
	Goroutines  int    `json:"goroutines"`
}

// DetailResponse is the body of GET /health/detail.
type DetailResponse struct {
	Response
	System SystemInfo `json:"system"`
}

type module struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config) Module {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &module{cfg: cfg, logger: logger.With(slog.String("module", "health"))}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", m.handleHealth)
	mux.HandleFunc("GET /health/detail", m.handleDetail)
}

func (m *module) handleHealth(w http.ResponseWriter, r *http.Request) {
	m.logger.DebugContext(r.Context(), "health check requested")
	httpserver.WriteJSON(w, http.StatusOK, m.status())
}

func (m *module) handleDetail(w http.ResponseWriter, r *http.Request) {
	httpserver.WriteJSON(w, http.StatusOK, DetailResponse{
		Response: m.status(),
		System:   readSystemInfo(),
	})
}

func (m *module) status() Response {
	return Response{
		Status:    StatusUp,
		Service:   m.cfg.Service,
		Version:   m.cfg.Version,
		Timestamp: m.cfg.Clock().Format(time.RFC3339),
	}
}

func readSystemInfo() SystemInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	maxMemory := "unlimited"
	if limit := debug.SetMemoryLimit(-1); limit != math.MaxInt64 {
		maxMemory = megabytes(uint64(limit))
	}

	return SystemInfo{
		TotalMemory: megabytes(ms.Sys),
		FreeMemory:  megabytes(ms.HeapIdle - ms.HeapReleased),
		MaxMemory:   maxMemory,
		Processors:  runtime.NumCPU(),
		Goroutines:  runtime.NumGoroutine(),
	}
}

func megabytes(n uint64) string {
	return fmt.Sprintf("%d MB", n/(1024*1024))
}
