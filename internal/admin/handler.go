// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/status"
)

// LeaseAuditor reports occupancy slots holding more than one active lease.
type LeaseAuditor interface {
	DuplicateActive(ctx context.Context) ([]lease.DuplicateActive, error)
}

// OccupancyCounter counts active properties and units by status.
type OccupancyCounter interface {
	CountOccupancy(ctx context.Context) ([]status.OccupancyCount, error)
}

type HandlerConfig struct {
	DBStats      func() sql.DBStats
	RedisStats   func() *redis.PoolStats
	RedisPing    func(ctx context.Context) error
	DBPing       func(ctx context.Context) error
	Leases       LeaseAuditor
	Occupancy    OccupancyCounter
	UnitCacheTTL time.Duration
	QueryTimeout time.Duration
}

// Handler serves the admin-only operational views: pool and runtime
// stats, the occupancy breakdown and the active lease integrity check.
type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator, adminOnly)

		r.Get("/admin/stats", h.GetSystemStats)
		r.Get("/admin/occupancy", h.GetOccupancy)
		r.Get("/admin/integrity/leases", h.GetDuplicateLeases)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	core.OK(w, SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: pingOK(ctx, h.cfg.DBPing),
			Stats:   dbPoolStats(h.cfg.DBStats),
		},
		Redis: RedisStatus{
			Healthy: pingOK(ctx, h.cfg.RedisPing),
			Stats:   redisPoolStats(h.cfg.RedisStats),
		},
		Runtime: readRuntimeStats(),
		Settings: Settings{
			UnitCacheTTL: h.cfg.UnitCacheTTL.String(),
			QueryTimeout: h.cfg.QueryTimeout.String(),
		},
	})
}

// GetOccupancy summarizes active properties and units by occupancy and
// payment status.
func (h *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Occupancy == nil {
		core.OK(w, summarize(nil))
		return
	}

	counts, err := h.cfg.Occupancy.CountOccupancy(r.Context())
	if err != nil {
		core.DomainError(w, err, "occupancy")
		return
	}

	core.OK(w, summarize(counts))
}

// GetDuplicateLeases lists every property or unit with more than one active
// lease. A healthy dataset returns an empty list.
func (h *Handler) GetDuplicateLeases(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Leases == nil {
		core.OK(w, []lease.DuplicateActiveResponse{})
		return
	}

	dups, err := h.cfg.Leases.DuplicateActive(r.Context())
	if err != nil {
		core.DomainError(w, err, "lease")
		return
	}

	core.OK(w, lease.ToDuplicateActiveResponseList(dups))
}

func pingOK(ctx context.Context, ping func(ctx context.Context) error) bool {
	return ping == nil || ping(ctx) == nil
}
