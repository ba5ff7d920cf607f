package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfig(defaultConfigPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		config = shared.DefaultConfig()
	case err != nil:
		logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
	}
	if err := config.ApplyEnv(); err != nil {
		logger.Warn("failed to load .env file", "error", err)
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: services.NewFestifyServiceFromConfig(config.API, logger),
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "festify",
		Usage:    "Administer Festify artists from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
