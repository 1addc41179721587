// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	up   = CheckerFunc(func(context.Context) error { return nil })
	down = CheckerFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") })
)

func probe(t *testing.T, h *Handler, path string) (int, ReadinessResponse) {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		deps   []Dependency
		code   int
		status string
	}{
		{"all healthy", []Dependency{{Name: "database", Checker: up}, {Name: "redis", Checker: up}}, http.StatusOK, "ok"},
		{"optional down", []Dependency{{Name: "database", Checker: up}, {Name: "redis", Checker: down, Optional: true}}, http.StatusOK, "degraded"},
		{"required down", []Dependency{{Name: "database", Checker: down}, {Name: "redis", Checker: up}}, http.StatusServiceUnavailable, "unavailable"},
		{"missing checker", []Dependency{{Name: "database"}}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := probe(t, NewHandler(tt.deps...), "/readyz")
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, body.Status)
			assert.Len(t, body.Checks, len(tt.deps))
		})
	}
}

func TestReadinessReportsEachCheck(t *testing.T) {
	_, body := probe(t, NewHandler(
		Dependency{Name: "database", Checker: up},
		Dependency{Name: "redis", Checker: down, Optional: true},
	), "/readyz")

	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
	assert.True(t, body.Checks[0].Healthy)
	assert.Equal(t, "redis", body.Checks[1].Name)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "ping failed", body.Checks[1].Message)
}

func TestShutdownAndNotReady(t *testing.T) {
	h := NewHandler(Dependency{Name: "database", Checker: up})

	code, _ := probe(t, h, "/livez")
	assert.Equal(t, http.StatusOK, code)

	h.SetReady(false)
	code, body := probe(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body.Status)

	h.SetReady(true)
	h.SetShutdown(true)
	code, body = probe(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "shutting_down", body.Status)
}

func TestPaths(t *testing.T) {
	assert.ElementsMatch(t, []string{"/healthz", "/livez", "/readyz"}, NewHandler().Paths())
}

func TestSetReadyDoesNotCancelShutdown(t *testing.T) {
	h := NewHandler(Dependency{Name: "database", Checker: up})

	h.SetShutdown(true)
	h.SetReady(true)

	code, body := probe(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "shutting_down", body.Status)
}

func TestRequiredFailureOutranksDegraded(t *testing.T) {
	code, body := probe(t, NewHandler(
		Dependency{Name: "redis", Checker: down, Optional: true},
		Dependency{Name: "database", Checker: down},
	), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body.Status)
}
