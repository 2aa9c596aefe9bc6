package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/memmatch/internal/game"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 700*time.Millisecond, cfg.RevertDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, game.Medium, cfg.Difficulty())
	assert.Equal(t, "memmatch.results", cfg.NATS.Subject)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memmatch.yaml")
	data := `
listen: ":9000"
store:
  driver: memory
game:
  revert_delay: 1s
  default_difficulty: hard
  seed: 7
nats:
  url: nats://localhost:4222
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, time.Second, cfg.RevertDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.TickInterval(), "unset keys keep defaults")
	assert.Equal(t, game.Hard, cfg.Difficulty())
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.NoError(t, cfg.Validate())

	sc := cfg.Session()
	assert.Equal(t, time.Second, sc.RevertDelay)
	assert.Equal(t, game.Hard, sc.Difficulty)
	assert.Equal(t, int64(7), sc.Seed)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MEMMATCH_LISTEN", ":7070")
	t.Setenv("MEMMATCH_STORE_DRIVER", "memory")
	t.Setenv("MEMMATCH_NATS_URL", "nats://broker:4222")
	t.Setenv("MEMMATCH_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"sqlite path", func(c *Config) { c.Store.Path = "" }},
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"duration", func(c *Config) { c.Game.RevertDelay = "soon" }},
		{"difficulty", func(c *Config) { c.Game.DefaultDifficulty = "nightmare" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
