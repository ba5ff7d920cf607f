package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/festify/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes a config file from the embedded template.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	if _, err := shared.LoadConfig(configPath); err != nil {
		return fmt.Errorf("created config is not valid: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlain("Set api.base_url (or %s) to point at your Festify API.\n", shared.EnvAPIURL)
	return nil
}

// ConfigShow prints the effective configuration with the token masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if config.API.Token != "" {
		config.API.Token = "********"
	}

	if err := toml.NewEncoder(r.output).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
