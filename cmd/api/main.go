// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Otakurin HTTP API server.
//
// # Commands
//
//	api serve            migrate to head, then serve HTTP (default)
//	api migrate up       apply pending migrations and exit
//	api migrate down -n  revert n migrations and exit
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/otakurin/internal/platform/config"
	"github.com/taibuivan/otakurin/internal/platform/constants"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Otakurin media tracking API",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCommand()
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCommand())
	return root
}

// bootstrap loads configuration and builds the process logger.
//
// The logger starts at INFO so that a configuration failure is still
// structured JSON, and drops to DEBUG when the config asks for it.
func bootstrap() (*config.Config, *slog.Logger, error) {
	log := newLogger(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", err))
		return nil, nil, err
	}

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)
	return cfg, log, nil
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// fail logs a structured startup error and returns it for cobra to exit on.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly.
func fail(log *slog.Logger, err error, stage string) error {
	log.Error("startup_failure", slog.String("context", stage), slog.Any("error", err))
	return err
}
