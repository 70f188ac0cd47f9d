package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/canopy-network/canopy/lib/vxeddsa"
)

// Config is the optional YAML configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Audit logs one line per library operation to stderr.
	Audit bool `yaml:"audit"`

	// SeedHash selects the expansion used by the derive subcommand.
	SeedHash string `yaml:"seed_hash"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Audit:    false,
		SeedHash: vxeddsa.SHA256_HKDF.String(),
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func loadConfiguration(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	return DefaultConfig(), nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := vxeddsa.ParseHashAlgorithm(c.SeedHash); err != nil {
		return err
	}
	return nil
}

// newSigner builds the library signer this configuration describes.
func (c *Config) newSigner(logger *slog.Logger) (*vxeddsa.Signer, error) {
	seedHash, err := vxeddsa.ParseHashAlgorithm(c.SeedHash)
	if err != nil {
		return nil, err
	}

	cfg := vxeddsa.DefaultConfig()
	cfg.SeedHash = seedHash
	if c.Audit {
		cfg.Audit = newSlogAuditHandler(logger)
	}
	return vxeddsa.NewSigner(cfg)
}
