package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-showdown/internal/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Games = 12
	cfg.Players = 4
	cfg.Rounds = 20
	cfg.StartingChips = 200
	cfg.Seed = 12345
	cfg.Timeout = 10 * time.Second
	cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	return cfg
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no games", func(c *Config) { c.Games = 0 }},
		{"one player", func(c *Config) { c.Players = 1 }},
		{"no rounds", func(c *Config) { c.Rounds = 0 }},
		{"no chips", func(c *Config) { c.StartingChips = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	serial, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 4
	parallel, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, serial, parallel, "worker count must not change the results")

	cfg.Seed = 54321
	other, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, serial.Values, other.Values)
}

func TestRunRandomBots(t *testing.T) {
	cfg := testConfig()
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Games, stats.Games)
	assert.Greater(t, stats.Rounds, cfg.Games)
	assert.LessOrEqual(t, stats.Rounds, cfg.Games*cfg.Rounds)
	assert.LessOrEqual(t, stats.MaxPot, cfg.Players*cfg.StartingChips)
	assert.LessOrEqual(t, len(stats.Seats), cfg.Players)
	require.NoError(t, stats.Validate())
}

func TestRunCallingStationsAlwaysShowDown(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = bot.StrategyCall

	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	// Nobody ever bets, so nobody busts and every round reaches the river
	assert.Equal(t, cfg.Games*cfg.Rounds, stats.Rounds)
	assert.Equal(t, stats.Rounds, stats.Showdowns)
	assert.Equal(t, stats.Rounds, stats.Streets["River"])
	assert.Zero(t, stats.MaxPot)

	shown := 0
	for _, n := range stats.Categories {
		shown += n
	}
	assert.Equal(t, stats.Rounds*cfg.Players, shown)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Strategy = bot.StrategyCall
	_, err := New(cfg).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = "shark"
	_, err := New(cfg).Run(context.Background())
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)
}

func TestSummary(t *testing.T) {
	cfg := testConfig()
	cfg.Games = 2
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	out := Summary(stats)
	assert.Contains(t, out, "Games: 2")
	assert.Contains(t, out, "=== SEATS ===")
	assert.Contains(t, out, "Player 1:")
	assert.Contains(t, out, "Straight Flush:")
	assert.Contains(t, out, "uncontested:")
}
