package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for cache when Redis is not configured.
func NewHealthHandler(store, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		store: store,
		cache: cache,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness endpoint.
// It returns 200 if the server is running.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness endpoint. Dependencies are pinged concurrently
// and readiness fails if any of them fails.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		checks = make(map[string]string)
	)
	record := func(name, result string) {
		mu.Lock()
		checks[name] = result
		mu.Unlock()
	}

	var g errgroup.Group
	for name, checker := range map[string]HealthChecker{"store": h.store, "redis": h.cache} {
		if checker == nil {
			record(name, "not configured")
			continue
		}
		g.Go(func() error {
			if err := checker.Ping(ctx); err != nil {
				record(name, "error: "+err.Error())
				return err
			}
			record(name, "ok")
			return nil
		})
	}

	status := "ok"
	statusCode := http.StatusOK
	if err := g.Wait(); err != nil {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}
