package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/abdulrahman-code/pyvet/pkg/config"
)

// singlePath returns the one positional file argument.
func singlePath(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one Python file, got %d arguments", c.Args().Len())
	}
	return c.Args().First(), nil
}

// loadConfig loads the config named by --config, or searches the standard
// locations.
func loadConfig(c *cli.Context) *config.Config {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err == nil {
			cfg = loaded
		}
	}
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}
	return cfg
}

// getFormat resolves the output format; an explicit flag wins over the
// config file.
func getFormat(c *cli.Context, cfg *config.Config) string {
	if c.IsSet("format") || cfg.Output.Format == "" {
		return c.String("format")
	}
	return cfg.Output.Format
}
