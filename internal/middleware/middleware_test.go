// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type verifierFunc func(ctx context.Context, token string) (*AccessTokenClaims, error)

func (f verifierFunc) VerifyAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error) {
	return f(ctx, token)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def", "abc.def"},
		{"bearer  abc ", "abc"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, ExtractToken(r), tt.header)
	}
}

func TestAuthenticator(t *testing.T) {
	verifier := verifierFunc(func(_ context.Context, token string) (*AccessTokenClaims, error) {
		switch token {
		case "good":
			return &AccessTokenClaims{TokenID: "jti-1", UserID: 9, Role: user.RoleOwner}, nil
		case "old":
			return nil, core.ErrTokenExpired
		case "revoked":
			return nil, core.ErrTokenRevoked
		default:
			return nil, errors.New("bad signature")
		}
	})

	var seen *AccessTokenClaims
	h := Authenticator(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r.Context())
		id, ok := GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(9), id)
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(auth string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/properties/1", nil)
		if auth != "" {
			r.Header.Set("Authorization", auth)
		}
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := do("Bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "jti-1", seen.TokenID)

	rec = do("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do("Bearer old")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")

	rec = do("Bearer revoked")
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")

	rec = do("Bearer forged")
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestRequireManager(t *testing.T) {
	h := RequireManager(okHandler)

	do := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/", nil).WithContext(ctx))
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do(context.Background()))

	for _, role := range []user.Role{user.RoleAdmin, user.RoleOwner, user.RolePropertyManager} {
		ctx := WithClaims(context.Background(), &AccessTokenClaims{UserID: 1, Role: role})
		assert.Equal(t, http.StatusOK, do(ctx), role.String())
	}

	for _, role := range []user.Role{user.RoleTenant, user.RoleLeasingAgent, user.RoleGuest} {
		ctx := WithClaims(context.Background(), &AccessTokenClaims{UserID: 1, Role: role})
		assert.Equal(t, http.StatusForbidden, do(ctx), role.String())
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-123")
	h.ServeHTTP(rec, r)
	assert.Equal(t, "req-123", got)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	h.ServeHTTP(rec, r)
	assert.Len(t, got, 36)
	assert.Equal(t, got, rec.Header().Get(RequestIDHeader))
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})))

	r := httptest.NewRequest(http.MethodPost, "/v1/leases", nil)
	r.Header.Set(RequestIDHeader, "req-9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status":409`)
	assert.Contains(t, out, `"path":"/v1/leases"`)
	assert.Contains(t, out, `"request_id":"req-9"`)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(false)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	rec = httptest.NewRecorder()
	SecurityHeaders(true)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "PATCH"},
		AllowedHeaders: []string{"Authorization"},
		MaxAge:         600,
	})(okHandler)

	preflight := func(origin string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/v1/units/1/status", nil)
		r.Header.Set("Origin", origin)
		r.Header.Set("Access-Control-Request-Method", "PATCH")
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := preflight("https://app.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, PATCH", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	rec = preflight("https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRateLimiterFallsBackToLocalLimiter(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:      PerWindow(1, 1, time.Hour),
		BypassFunc: BypassPaths("/healthz"),
	})
	h := rl.Handler(okHandler)

	do := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r.RemoteAddr = "203.0.113.7:5555"
		h.ServeHTTP(rec, r)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("/v1/statuses").Code)

	rec := do("/v1/statuses")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("/healthz").Code)
}

func TestKeyFunctions(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.4:4242"
	assert.Equal(t, "ratelimit:ip:198.51.100.4", KeyByIP(r))

	r.Header.Set("X-Forwarded-For", "10.0.0.1, 192.0.2.8")
	assert.Equal(t, "ratelimit:ip:192.0.2.8", KeyByIP(r))

	ctx := WithClaims(r.Context(), &AccessTokenClaims{UserID: 31, Role: user.RoleTenant})
	assert.Equal(t, "ratelimit:user:31", KeyByUser(r.WithContext(ctx)))
}

func TestPerWindowDefaultsToMinute(t *testing.T) {
	assert.Equal(t, time.Minute, PerWindow(10, 5, 0).Period)
	assert.Equal(t, time.Minute, PerMinute(10, 5).Period)
	assert.Equal(t, 30*time.Second, PerWindow(10, 5, 30*time.Second).Period)
}

func TestRoleRateLimiterUsesRoleBudget(t *testing.T) {
	limits := map[user.Role]RoleLimit{
		user.RoleTenant: {RequestsPerMinute: 1, BurstSize: 1},
		user.RoleGuest:  {RequestsPerMinute: 100, BurstSize: 100},
	}
	h := RoleRateLimiter(unreachableRedis(t), limits)(okHandler)

	do := func(role user.Role) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/leases/1", nil)
		r = r.WithContext(WithClaims(r.Context(), &AccessTokenClaims{UserID: 8, Role: role}))
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := do(user.RoleTenant)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.RoleTenant.String(), rec.Header().Get("X-RateLimit-Role"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusTooManyRequests, do(user.RoleTenant).Code)
}

func TestLocalLimiterSweepsIdleBuckets(t *testing.T) {
	l := &localLimiter{buckets: make(map[string]*bucket)}
	start := time.Now()
	limit := PerMinute(10, 2)

	l.allow("a", limit, start)
	l.allow("b", limit, start.Add(bucketIdleTTL))
	require.Len(t, l.buckets, 2)

	l.allow("b", limit, start.Add(bucketIdleTTL+sweepInterval+time.Second))
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "b")
}
