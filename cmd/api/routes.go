// AngelaMos | 2026
// routes.go

package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/amontalvo1020/rentalspro/internal/admin"
	"github.com/amontalvo1020/rentalspro/internal/auth"
	"github.com/amontalvo1020/rentalspro/internal/company"
	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/health"
	"github.com/amontalvo1020/rentalspro/internal/lease"
	"github.com/amontalvo1020/rentalspro/internal/middleware"
	"github.com/amontalvo1020/rentalspro/internal/occupancy"
	"github.com/amontalvo1020/rentalspro/internal/property"
	"github.com/amontalvo1020/rentalspro/internal/status"
	"github.com/amontalvo1020/rentalspro/internal/unit"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

type routeDeps struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *core.Database
	redis  *core.Redis
	tokens *auth.JWTManager
	probes *health.Handler
}

// mountRoutes builds the feature services and registers every route. All
// API routes live under /v1; probes and the JWKS stay at the root.
func mountRoutes(router chi.Router, d routeDeps) {
	cfg := d.cfg

	userRepo := user.NewRepository(d.db.DB)
	users := user.NewService(userRepo, cfg.Security)
	companies := company.NewRepository(d.db.DB)
	statuses := status.NewRepository(d.db.DB)

	unitCache := unit.NewRedisCache(d.redis, cfg.Cache.UnitTTL, d.logger)
	units := unit.NewRepository(d.db.DB)

	properties := property.NewService(
		d.db.DB,
		property.NewRepository(d.db.DB),
		units,
		userRepo,
		companies,
	)
	leases := lease.NewService(lease.NewRepository(d.db.DB), users)

	engine := occupancy.NewEngine(
		occupancy.NewStore(d.db.DB),
		unitCache,
		cfg.Database.QueryTimeout,
		d.logger,
	)

	sessions := auth.NewService(users, d.tokens, d.redis, cfg.Security.HashIterations)

	router.Use(
		middleware.RequestID,
		middleware.Tracing,
		middleware.Logger(d.logger),
		middleware.NewRateLimiter(d.redis.Client, middleware.RateLimitConfig{
			Limit:      middleware.PerWindow(cfg.RateLimit.Requests, cfg.RateLimit.Burst, cfg.RateLimit.Window),
			BypassFunc: middleware.BypassPaths(d.probes.Paths()...),
		}).Handler,
		middleware.SecurityHeaders(cfg.IsProduction()),
		middleware.CORS(cfg.CORS),
	)

	d.probes.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", d.tokens.GetJWKSHandler())

	authenticated := chi.Chain(
		middleware.Authenticator(sessions),
		middleware.RoleRateLimiter(d.redis.Client, middleware.DefaultRoleLimits),
	).Handler

	router.Route("/v1", func(r chi.Router) {
		status.NewHandler(statuses).RegisterRoutes(r)
		auth.NewHandler(sessions).RegisterRoutes(r, authenticated)
		user.NewHandler(users).RegisterRoutes(r, authenticated)
		company.NewHandler(companies).RegisterRoutes(r, authenticated)
		property.NewHandler(properties).RegisterRoutes(r, authenticated)
		unit.NewHandler(unit.NewService(units, unitCache)).RegisterRoutes(r, authenticated)
		lease.NewHandler(leases).RegisterRoutes(r, authenticated)
		occupancy.NewHandler(engine).RegisterRoutes(r, authenticated, middleware.RequireManager)

		admin.NewHandler(admin.HandlerConfig{
			DBStats:      d.db.Stats,
			DBPing:       d.db.Ping,
			RedisStats:   d.redis.PoolStats,
			RedisPing:    d.redis.Ping,
			Leases:       leases,
			Occupancy:    statuses,
			UnitCacheTTL: cfg.Cache.UnitTTL,
			QueryTimeout: cfg.Database.QueryTimeout,
		}).RegisterRoutes(r, authenticated, middleware.RequireAdmin)
	})
}
