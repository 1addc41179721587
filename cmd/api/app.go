// AngelaMos | 2026
// app.go

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amontalvo1020/rentalspro/internal/auth"
	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/health"
	"github.com/amontalvo1020/rentalspro/internal/server"
)

const drainDelay = 5 * time.Second

// app owns the process-wide connections and the HTTP server built on them.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *core.Telemetry
	db        *core.Database
	redis     *core.Redis
	srv       *server.Server
}

// newApp connects every backing service and mounts the routes. On failure
// whatever was already opened is closed again.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if a.telemetry, err = core.NewTelemetry(ctx, cfg.Otel, cfg.App); err != nil {
		return nil, err
	}
	logger.Info("tracing initialized",
		"exporting", a.telemetry.Exporting(),
		"endpoint", cfg.Otel.Endpoint,
	)

	if a.db, err = core.NewDatabase(ctx, cfg.Database); err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"application_name", cfg.Database.ApplicationName,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	if a.redis, err = core.NewRedis(ctx, cfg.Redis); err != nil {
		return nil, err
	}
	logger.Info("redis connected", "key_prefix", cfg.Redis.KeyPrefix)

	tokens, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return nil, err
	}
	logger.Info("signing key loaded", "algorithm", "ES256", "key_id", tokens.GetKeyID())

	probes := health.NewHandler(
		health.Dependency{Name: "database", Checker: a.db},
		health.Dependency{Name: "redis", Checker: a.redis, Optional: true},
	)

	a.srv = server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: probes,
		Logger:        logger,
	})

	mountRoutes(a.srv.Router(), routeDeps{
		cfg:    cfg,
		logger: logger,
		db:     a.db,
		redis:  a.redis,
		tokens: tokens,
		probes: probes,
	})

	return a, nil
}

// serve blocks until ctx is canceled or the listener fails, then drains.
func (a *app) serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- a.srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := a.srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		return err
	}

	a.logger.Info("application stopped")
	return nil
}

// close flushes spans and releases connections. It is safe on a partly
// built app.
func (a *app) close() {
	var errs []error
	if a.telemetry != nil {
		errs = append(errs, a.telemetry.Shutdown(context.Background()))
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Error("closing connections", "error", fmt.Errorf("close: %w", err))
	}
}
