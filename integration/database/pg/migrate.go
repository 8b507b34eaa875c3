package pg

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies pending goose SQL migrations from cfg.MigrationsPath.
// goose works against database/sql, so the pgx pool is bridged through the
// stdlib adapter; the underlying pool stays owned by the caller.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if cfg.MigrationsPath == "" {
		return ErrMigrationPathNotProvided
	}

	if info, err := os.Stat(cfg.MigrationsPath); err != nil || !info.IsDir() {
		return ErrMigrationsDirNotFound
	}

	db := stdlib.OpenDBFromPool(pool)

	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, cfg.MigrationsPath); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	log.InfoContext(ctx, "database migrations applied", slog.Int64("version", version))
	return nil
}
