// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Dependency is a named readiness probe. Optional dependencies are reported
// but never fail readiness: Redis only backs the unit cache, rate limiting
// and token revocation, all of which degrade instead of failing.
type Dependency struct {
	Name     string
	Checker  Checker
	Optional bool
}

type phase int32

const (
	phaseServing phase = iota
	phaseNotReady
	phaseShuttingDown
)

type Handler struct {
	deps    []Dependency
	timeout time.Duration
	phase   atomic.Int32
	// held while shutting down so SetReady cannot undo it
	draining atomic.Bool
}

func NewHandler(deps ...Dependency) *Handler {
	return &Handler{deps: deps, timeout: 5 * time.Second}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, p := range h.Paths() {
		if p == "/readyz" {
			r.Get(p, h.Readiness)
			continue
		}
		r.Get(p, h.Liveness)
	}
}

// Paths lists the probe routes, for middleware that should skip them.
func (h *Handler) Paths() []string {
	return []string{"/healthz", "/livez", "/readyz"}
}

func (h *Handler) SetReady(ready bool) {
	if h.draining.Load() {
		return
	}
	if ready {
		h.phase.Store(int32(phaseServing))
		return
	}
	h.phase.Store(int32(phaseNotReady))
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.draining.Store(shutdown)
	if shutdown {
		h.phase.Store(int32(phaseShuttingDown))
		return
	}
	h.phase.Store(int32(phaseServing))
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if phase(h.phase.Load()) == phaseShuttingDown {
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	}
	writeProbe(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Readiness is ok when every required dependency answers, degraded when
// only optional ones fail, and 503 otherwise.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	switch phase(h.phase.Load()) {
	case phaseShuttingDown:
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	case phaseNotReady:
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "not_ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checks := h.runChecks(ctx)

	resp := ReadinessResponse{Status: "ok", Checks: checks}
	code := http.StatusOK
	for i, c := range checks {
		switch {
		case c.Healthy:
		case h.deps[i].Optional:
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		default:
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}

	writeProbe(w, code, resp)
}

func (h *Handler) runChecks(ctx context.Context) []HealthCheck {
	checks := make([]HealthCheck, len(h.deps))

	var g errgroup.Group
	for i, dep := range h.deps {
		g.Go(func() error {
			checks[i] = check(ctx, dep)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // checks never return errors

	return checks
}

func check(ctx context.Context, dep Dependency) HealthCheck {
	hc := HealthCheck{Name: dep.Name}

	if dep.Checker == nil {
		hc.Message = dep.Name + " checker not configured"
		return hc
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)
	hc.Latency = time.Since(start).String()

	if err != nil {
		hc.Message = "ping failed"
		return hc
	}

	hc.Healthy = true
	return hc
}

func writeProbe(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) //nolint:errcheck // best-effort response
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
