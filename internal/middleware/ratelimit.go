// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	BypassFunc func(*http.Request) bool
}

// budget picks the bucket key and limit for one request.
type budget func(r *http.Request) (key string, limit redis_rate.Limit)

// RateLimiter counts requests in Redis so every replica shares one budget.
// While Redis is unreachable each replica counts on its own.
type RateLimiter struct {
	remote *redis_rate.Limiter
	local  *localLimiter
	budget budget
	bypass func(*http.Request) bool
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	keyFn := cfg.KeyFunc
	if keyFn == nil {
		keyFn = KeyByIP
	}
	return newRateLimiter(rdb, cfg.BypassFunc, func(r *http.Request) (string, redis_rate.Limit) {
		return keyFn(r), cfg.Limit
	})
}

func newRateLimiter(rdb *redis.Client, bypass func(*http.Request) bool, b budget) *RateLimiter {
	return &RateLimiter{
		remote: redis_rate.NewLimiter(rdb),
		local:  &localLimiter{buckets: make(map[string]*bucket)},
		budget: b,
		bypass: bypass,
	}
}

// BypassPaths skips rate limiting for the exact paths given.
func BypassPaths(paths ...string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.URL.Path]
		return ok
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.bypass != nil && rl.bypass(r) {
			next.ServeHTTP(w, r)
			return
		}

		key, limit := rl.budget(r)

		res, err := rl.remote.Allow(r.Context(), key, limit)
		if err != nil {
			slog.DebugContext(r.Context(), "rate limit store unavailable, counting locally",
				"key", key,
				"error", err,
			)
			res = rl.local.allow(key, limit, time.Now())
		}

		writeLimitHeaders(w, res, limit)

		if res.Allowed == 0 {
			tooManyRequests(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// KeyByIP uses the last X-Forwarded-For hop, which is the one the nearest
// proxy appended.
func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyByUser keys authenticated requests by user id and everything else by
// client address.
func KeyByUser(r *http.Request) string {
	if id, ok := GetUserID(r.Context()); ok {
		return "ratelimit:user:" + strconv.FormatInt(id, 10)
	}
	return KeyByIP(r)
}

func writeLimitHeaders(w http.ResponseWriter, res *redis_rate.Result, limit redis_rate.Limit) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
}

func tooManyRequests(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	core.JSON(w, http.StatusTooManyRequests, core.Response{
		Error: &core.ErrorBody{
			Code:    "RATE_LIMITED",
			Message: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
		},
	})
}

const (
	sweepInterval = 5 * time.Minute
	bucketIdleTTL = 10 * time.Minute
)

type bucket struct {
	tokens *rate.Limiter
	seen   time.Time
}

// localLimiter is the per-process token bucket used while Redis is down.
// Idle buckets are swept lazily on access.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit, now time.Time) *redis_rate.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > sweepInterval {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > bucketIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	var interval time.Duration
	if limit.Rate > 0 {
		interval = limit.Period / time.Duration(limit.Rate)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(rate.Every(interval), max(limit.Burst, 1))}
		l.buckets[key] = b
	}
	b.seen = now

	res := &redis_rate.Result{
		Limit:      limit,
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if b.tokens.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	res.Remaining = max(int(b.tokens.TokensAt(now)), 0)

	return res
}

// RoleLimit is the per-minute budget for one user role.
type RoleLimit struct {
	RequestsPerMinute int
	BurstSize         int
}

// DefaultRoleLimits gives staff roles more headroom than tenants and
// guests. Roles missing from the map use the Guest entry.
var DefaultRoleLimits = map[user.Role]RoleLimit{
	user.RoleAdmin:            {RequestsPerMinute: 1200, BurstSize: 200},
	user.RoleOwner:            {RequestsPerMinute: 600, BurstSize: 100},
	user.RolePropertyManager:  {RequestsPerMinute: 600, BurstSize: 100},
	user.RoleLeasingAgent:     {RequestsPerMinute: 300, BurstSize: 50},
	user.RoleMaintenanceStaff: {RequestsPerMinute: 300, BurstSize: 50},
	user.RoleTenant:           {RequestsPerMinute: 120, BurstSize: 20},
	user.RoleGuest:            {RequestsPerMinute: 60, BurstSize: 10},
}

// RoleRateLimiter limits each user with a budget chosen by role. It must
// run after Authenticator.
func RoleRateLimiter(rdb *redis.Client, limits map[user.Role]RoleLimit) func(http.Handler) http.Handler {
	rl := newRateLimiter(rdb, nil, func(r *http.Request) (string, redis_rate.Limit) {
		l := roleLimit(r, limits)
		return KeyByUser(r), PerMinute(l.RequestsPerMinute, l.BurstSize)
	})

	return func(next http.Handler) http.Handler {
		limited := rl.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				role = user.RoleGuest
			}
			w.Header().Set("X-RateLimit-Role", role.String())
			limited.ServeHTTP(w, r)
		})
	}
}

func roleLimit(r *http.Request, limits map[user.Role]RoleLimit) RoleLimit {
	if role, ok := GetUserRole(r.Context()); ok {
		if l, ok := limits[role]; ok {
			return l
		}
	}
	return limits[user.RoleGuest]
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return PerWindow(rate, burst, time.Minute)
}

// PerWindow allows rate requests per window. A non-positive window falls
// back to one minute.
func PerWindow(rate, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: window}
}
