// Package config loads the server configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/session"
)

// Config holds all memmatch configuration.
type Config struct {
	Listen    string `yaml:"listen"`
	AssetsDir string `yaml:"assets_dir"`
	LogLevel  string `yaml:"log_level"` // debug, info, warn, error

	Store StoreConfig `yaml:"store"`
	Game  GameConfig  `yaml:"game"`
	NATS  NATSConfig  `yaml:"nats"`
}

// StoreConfig selects the score history backend.
type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`
}

// GameConfig tunes play.
type GameConfig struct {
	RevertDelay       string `yaml:"revert_delay"`
	TickInterval      string `yaml:"tick_interval"`
	DefaultDifficulty string `yaml:"default_difficulty"`
	Seed              int64  `yaml:"seed"` // 0 for random
}

// NATSConfig enables result publishing when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:    ":8080",
		AssetsDir: "assets",
		LogLevel:  "info",
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "memmatch.db",
		},
		Game: GameConfig{
			RevertDelay:       "700ms",
			TickInterval:      "300ms",
			DefaultDifficulty: string(game.Medium),
		},
		NATS: NATSConfig{
			Subject: results.DefaultSubject,
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MEMMATCH_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("MEMMATCH_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("MEMMATCH_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("MEMMATCH_NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("MEMMATCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// RevertDelay returns how long a mismatched pair stays face up.
func (c *Config) RevertDelay() time.Duration {
	d, err := time.ParseDuration(c.Game.RevertDelay)
	if err != nil || d <= 0 {
		return 700 * time.Millisecond
	}
	return d
}

// TickInterval returns the timer display refresh period.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Game.TickInterval)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// Difficulty returns the initial board selection.
func (c *Config) Difficulty() game.Difficulty {
	if d, ok := game.ParseDifficulty(c.Game.DefaultDifficulty); ok {
		return d
	}
	return game.Medium
}

// Session returns the controller settings.
func (c *Config) Session() session.Config {
	return session.Config{
		RevertDelay:  c.RevertDelay(),
		TickInterval: c.TickInterval(),
		Difficulty:   c.Difficulty(),
		Seed:         c.Game.Seed,
	}
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "", "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store path required for sqlite driver")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (valid: memory, sqlite)", c.Store.Driver)
	}

	validLevel := false
	for _, l := range validLevels {
		if c.LogLevel == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.LogLevel, validLevels)
	}

	for name, v := range map[string]string{
		"game.revert_delay":  c.Game.RevertDelay,
		"game.tick_interval": c.Game.TickInterval,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if d := c.Game.DefaultDifficulty; d != "" {
		if _, ok := game.ParseDifficulty(d); !ok {
			return fmt.Errorf("invalid default difficulty: %s", d)
		}
	}
	return nil
}
