// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner wraps a golang-migrate instance bound to one database.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// New opens the migrations directory and the target database.
func New(dsn, migrationsPath string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+migrationsPath, Pgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = &slogBridge{logger: logger}
	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the source and database handles.
func (r *Runner) Close() {
	sourceErr, dbErr := r.migrator.Close()
	if sourceErr != nil {
		r.logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
	}
	if dbErr != nil {
		r.logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// Up applies every pending migration. A database already at head is not an error.
func (r *Runner) Up() error {
	from, err := r.version()
	if err != nil {
		return err
	}

	if err := r.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _ := r.version()
	r.logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// Down reverts the given number of migrations.
func (r *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}

	if err := r.migrator.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down failed: %w", err)
	}

	to, _ := r.version()
	r.logger.Info("migration_reverted", slog.Int("steps", steps), slog.Uint64("to_version", uint64(to)))
	return nil
}

// version returns the current schema version, refusing to continue from a dirty state.
func (r *Runner) version() (uint, error) {
	version, dirty, err := r.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migration: database is dirty at version %d", version)
	}
	return version, nil
}

// Pgx5DSN rewrites a postgres:// URL to the pgx5:// scheme golang-migrate expects.
func Pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type slogBridge struct {
	logger *slog.Logger
}

func (b *slogBridge) Printf(format string, args ...any) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Verbose() bool { return false }
