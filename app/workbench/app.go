// Package workbench composes the SQL workbench backend: PostgreSQL and Redis
// connections, schema migrations, the startup readiness gate, the session
// core, and the HTTP surface. Run owns the full process lifecycle.
package workbench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/querypad/querypad/core/config"
	"github.com/querypad/querypad/core/cookie"
	"github.com/querypad/querypad/core/health"
	"github.com/querypad/querypad/core/logger"
	"github.com/querypad/querypad/core/server"
	"github.com/querypad/querypad/core/session"
	"github.com/querypad/querypad/core/sessiontransport"
	"github.com/querypad/querypad/core/startup"
	"github.com/querypad/querypad/core/user"
	"github.com/querypad/querypad/integration/database/pg"
	"github.com/querypad/querypad/integration/database/redis"
)

// Run boots the application and blocks until the context is canceled or a
// fatal error occurs. Request handling starts only after migrations have run
// and every dependency has answered its readiness probe.
func Run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat).With(
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.Env),
	)

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	checks := []startup.Check{
		{Name: "postgres", Probe: pg.Healthcheck(pool)},
	}

	var cache *goredis.Client
	if cfg.Session.Store == session.StoreDual {
		cache, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() { _ = cache.Close() }()

		checks = append(checks, startup.Check{Name: "redis", Probe: redis.Healthcheck(cache)})
	}

	if err := startup.WaitReady(ctx, log, cfg.Startup, checks...); err != nil {
		return err
	}

	users := user.NewRepository(pool)

	store, err := newStore(cfg, pool, cache, log)
	if err != nil {
		return err
	}

	sessions := session.NewService(store, users,
		session.WithTTL(cfg.Session.TTL),
		session.WithLogger(log),
	)

	cookieCfg := cfg.Cookie
	if cfg.IsDevelopment() {
		cookieCfg.Secure = false
	}
	cookies := cookie.New(cookieCfg)

	transport := sessiontransport.NewCookie(sessions, cookies, log)

	h := &Handler{
		users:    users,
		sessions: sessions,
		cookies:  cookies,
		log:      log,
	}

	probes := make([]func(context.Context) error, 0, len(checks))
	for _, c := range checks {
		probes = append(probes, c.Probe)
	}
	mux := newRouter(h, transport, health.Readiness(log, probes...))

	srv := server.NewFromConfig(cfg.Server, server.WithLogger(log))

	log.InfoContext(ctx, "application ready",
		logger.Component("app"),
		slog.String("addr", cfg.Server.Addr),
		slog.String("session_store", cfg.Session.Store),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, mux))
	return g.Wait()
}

// newStore builds the session store variant selected by configuration.
func newStore(cfg Config, pool *pgxpool.Pool, cache *goredis.Client, log *slog.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case session.StoreDual:
		return session.NewDualStore(
			session.NewRedisStore(cache),
			session.NewSessionRows(pool),
			log,
		), nil
	case session.StorePostgres:
		return session.NewPGStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown session store variant %q", cfg.Session.Store)
	}
}
