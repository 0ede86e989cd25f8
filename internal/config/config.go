// Package config holds the tuning values of the progression core: derived
// stat coefficients, the experience curve and inventory capacity.
package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/inventory"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
	"github.com/KirkDiggler/rpg-progression/internal/stats"
)

// Config is the read-only tuning for every character
type Config struct {
	Stats       stats.Config             `yaml:"stats"`
	Progression progression.Config       `yaml:"progression"`
	Capacity    inventory.CapacityConfig `yaml:"capacity"`
}

// Default returns the reference tuning
func Default() *Config {
	return &Config{
		Stats:       stats.DefaultConfig(),
		Progression: progression.DefaultConfig(),
		Capacity:    inventory.DefaultCapacityConfig(),
	}
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Stats.Validate(); err != nil {
		return errors.Wrap(err, "invalid stats config")
	}
	if err := c.Progression.Validate(); err != nil {
		return errors.Wrap(err, "invalid progression config")
	}
	if err := c.Capacity.Validate(); err != nil {
		return errors.Wrap(err, "invalid capacity config")
	}
	return nil
}

// Load reads YAML on top of the defaults, so a file only needs the values it
// changes. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	return Load(f)
}
