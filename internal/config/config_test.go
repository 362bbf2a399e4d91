package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 5, cfg.Table.Players)
	assert.Equal(t, 1000, cfg.Table.StartingChips)
	assert.NoError(t, cfg.Validate())
}

func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, `
table {
  players        = 3
  starting_chips = 250
  seed           = 42
}

ai {
  strategy       = "call"
  think_delay_ms = 50
  raise_chance   = 0
}

ui {
  log_level = "debug"
  color     = "never"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Table.Players)
	assert.Equal(t, 250, cfg.Table.StartingChips)
	assert.Equal(t, int64(42), cfg.Table.Seed)
	assert.Equal(t, "call", cfg.AI.Strategy)
	assert.Equal(t, 50*time.Millisecond, cfg.AI.ThinkDelay())
	assert.Equal(t, log.DebugLevel, cfg.GetLogLevel())
	assert.Equal(t, ColorNever, cfg.UI.Color)
	assert.Equal(t, "holdem.log", cfg.UI.LogFile, "unset values keep their default")

	rc := cfg.AI.RandomConfig()
	assert.Equal(t, 0.0, rc.RaiseChance, "an explicit zero is kept")
	assert.Equal(t, 0.25, rc.FoldChance)
	assert.Equal(t, 50*time.Millisecond, rc.ThinkDelay)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `ui { log_file = "game.log" }`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "game.log", cfg.UI.LogFile)
	assert.Equal(t, 5, cfg.Table.Players)
	assert.Equal(t, "random", cfg.AI.Strategy)
}

func TestLoadExplicitZero(t *testing.T) {
	path := writeConfig(t, `
table { seed = 0 }
ai {
  think_delay_ms = 0
  fold_chance    = 0
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Zero(t, cfg.AI.ThinkDelayMS, "a zero in the file turns the delay off")
	assert.Zero(t, cfg.AI.ThinkDelay())
	assert.Zero(t, cfg.AI.RandomConfig().FoldChance)
	assert.Zero(t, cfg.Table.Seed)
	assert.Equal(t, 5, cfg.Table.Players)
}

func TestFileAndEnvironmentAgreeOnZero(t *testing.T) {
	fromFile, err := Load(writeConfig(t, `ai { think_delay_ms = 0 }`))
	require.NoError(t, err)

	t.Setenv("HOLDEM_AI_THINK_DELAY_MS", "0")
	fromEnv, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, fromEnv.AI.ThinkDelayMS, fromFile.AI.ThinkDelayMS)
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `table { players = `))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `table { seats = 4 }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `table { players = 3 }`)
	t.Setenv("HOLDEM_TABLE_PLAYERS", "6")
	t.Setenv("HOLDEM_TABLE_STARTING_CHIPS", "500")
	t.Setenv("HOLDEM_AI_FOLD_CHANCE", "0.5")
	t.Setenv("HOLDEM_UI_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Table.Players, "environment beats the file")
	assert.Equal(t, 500, cfg.Table.StartingChips)
	assert.Equal(t, 0.5, cfg.AI.RandomConfig().FoldChance)
	assert.Equal(t, log.WarnLevel, cfg.GetLogLevel())
}

func TestEnvironmentOverrideInvalid(t *testing.T) {
	t.Setenv("HOLDEM_TABLE_PLAYERS", "lots")
	_, err := Load("")
	assert.ErrorContains(t, err, "environment overrides")
}

func TestValidate(t *testing.T) {
	chance := func(f float64) *float64 { return &f }

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"too few players", func(c *Config) { c.Table.Players = 1 }, "players must be between"},
		{"too many players", func(c *Config) { c.Table.Players = 23 }, "players must be between"},
		{"too few chips", func(c *Config) { c.Table.StartingChips = 9 }, "starting chips"},
		{"unknown strategy", func(c *Config) { c.AI.Strategy = "shark" }, "invalid AI strategy"},
		{"negative delay", func(c *Config) { c.AI.ThinkDelayMS = -1 }, "think delay"},
		{"chances over one", func(c *Config) { c.AI.RaiseChance = chance(0.9) }, "invalid AI settings"},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "loud" }, "invalid log level"},
		{"bad color", func(c *Config) { c.UI.Color = "sometimes" }, "invalid color mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	cfg := DefaultConfig()
	cfg.Table.Players = MaxPlayers
	assert.NoError(t, cfg.Validate())
}
