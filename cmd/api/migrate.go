// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/otakurin/internal/platform/config"
	"github.com/taibuivan/otakurin/internal/platform/migration"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(*cobra.Command, []string) error {
			return withRunner(func(runner *migration.Runner) error { return runner.Up() })
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		RunE: func(*cobra.Command, []string) error {
			return withRunner(func(runner *migration.Runner) error { return runner.Down(steps) })
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to revert")

	migrate.AddCommand(up, down)
	return migrate
}

func withRunner(fn func(runner *migration.Runner) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	return migrateWith(cfg, log, fn)
}

func migrateWith(cfg *config.Config, log *slog.Logger, fn func(runner *migration.Runner) error) error {
	runner, err := migration.New(cfg.DatabaseURL, cfg.MigrationPath, log)
	if err != nil {
		return fail(log, err, "open migrations")
	}
	defer runner.Close()

	if err := fn(runner); err != nil {
		return fail(log, err, "run migrations")
	}
	return nil
}
