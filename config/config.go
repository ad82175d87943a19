/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/mcmahon-pairings/internal"
	"github.com/mikeb26/mcmahon-pairings/tourney"
)

// Config holds the settings of the mmpair tool.
type Config struct {
	Parameters tourney.Parameters `yaml:"parameters"`
	Cache      CacheConfig        `yaml:"cache"`
	Log        LogConfig          `yaml:"log"`
	// Workers bounds the goroutines computing pairing costs. 0 means one
	// per CPU.
	Workers int `yaml:"workers"`
}

// CacheConfig holds S3 storage and web cache settings. An empty bucket
// keeps downloaded documents in memory only.
type CacheConfig struct {
	Bucket string        `yaml:"bucket"`
	Gzip   bool          `yaml:"gzip"`
	MaxAge time.Duration `yaml:"max_age"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Parameters: tourney.DefaultParameters(),
		Cache:      CacheConfig{MaxAge: 15 * time.Minute},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads the YAML configuration in filename over the defaults and then
// applies MMPAIR_* environment overrides. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall back to defaults and the environment
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Parameters.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %v is negative", tourney.ErrInvalidInput,
			c.Workers)
	}
	if c.Cache.MaxAge < 0 {
		return fmt.Errorf("%w: cache max age %v is negative",
			tourney.ErrInvalidInput, c.Cache.MaxAge)
	}

	return nil
}

func getenv(name string) string {
	return os.Getenv(internal.EnvPrefix + name)
}

func envInt(name string, dst *int) error {
	v := getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %v%v value: %w", internal.EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func applyEnv(cfg *Config) error {
	p := &cfg.Parameters
	for name, dst := range map[string]*int{
		"HANDICAP_BAR":        &p.HandicapBar,
		"HANDICAP_CORRECTION": &p.HandicapCorrection,
		"HANDICAP_MAX":        &p.HandicapMax,
		"WORKERS":             &cfg.Workers,
	} {
		if err := envInt(name, dst); err != nil {
			return err
		}
	}

	if v := getenv("DUDD_COMPENSATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %vDUDD_COMPENSATE value: %w",
				internal.EnvPrefix, err)
		}
		p.DUDDCompensate = b
	}
	if v := getenv("FLOAT_UP"); v != "" {
		m, err := tourney.ParseFloatingMode(v)
		if err != nil {
			return err
		}
		p.FloatUpMode = m
	}
	if v := getenv("FLOAT_DOWN"); v != "" {
		m, err := tourney.ParseFloatingMode(v)
		if err != nil {
			return err
		}
		p.FloatDownMode = m
	}
	if v := getenv("SEEDING"); v != "" {
		m, err := tourney.ParseSeedingMode(v)
		if err != nil {
			return err
		}
		p.SeedingMode = m
	}

	if v := getenv("CACHE_BUCKET"); v != "" {
		cfg.Cache.Bucket = v
	}
	if v := getenv("CACHE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %vCACHE_MAX_AGE value: %w",
				internal.EnvPrefix, err)
		}
		cfg.Cache.MaxAge = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return nil
}
