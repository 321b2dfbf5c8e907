// Package config holds the recognized tunables: the sandbox budget, the
// captured-output tail size, the interpreter, and output preferences.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for pyvet.
type Config struct {
	Sandbox SandboxConfig `koanf:"sandbox"`
	Output  OutputConfig  `koanf:"output"`
}

// SandboxConfig controls the execution stage.
type SandboxConfig struct {
	Enabled        bool   `koanf:"enabled"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
	TailBytes      int    `koanf:"tail_bytes"`
	Interpreter    string `koanf:"interpreter"`
}

// OutputConfig controls report formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
}

// Timeout returns the sandbox budget as a duration.
func (s SandboxConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			Enabled:        true,
			TimeoutSeconds: 20,
			TailBytes:      20000,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config file locations, falling back to
// defaults when none parses.
func LoadOrDefault() *Config {
	configNames := []string{
		"pyvet.toml",
		"pyvet.yaml",
		"pyvet.yml",
		"pyvet.json",
		".pyvet.toml",
		".pyvet.yaml",
		".pyvet.yml",
		".pyvet.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
