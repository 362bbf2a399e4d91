// Package config loads game settings from an HCL file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
	"github.com/lox/holdem-showdown/internal/bot"
)

// EnvPrefix is the prefix for environment overrides, e.g. HOLDEM_TABLE_PLAYERS
const EnvPrefix = "holdem"

// Table limits. Every player takes two cards and the board with its burns
// takes eight, so the deck seats at most 22.
const (
	MinPlayers       = 2
	MaxPlayers       = 22
	MinStartingChips = 10
)

// Color modes for the terminal UI
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete game configuration
type Config struct {
	Table TableSettings `envconfig:"table"`
	AI    AISettings    `envconfig:"ai"`
	UI    UISettings    `envconfig:"ui"`
}

// TableSettings contains the table setup
type TableSettings struct {
	Players       int
	StartingChips int   `envconfig:"starting_chips"`
	Seed          int64 // 0 picks a time-based seed
}

// AISettings contains computer player settings
type AISettings struct {
	Strategy     string
	ThinkDelayMS int      `envconfig:"think_delay_ms"`
	RaiseChance  *float64 `envconfig:"raise_chance"`
	FoldChance   *float64 `envconfig:"fold_chance"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `envconfig:"log_level"`
	LogFile  string `envconfig:"log_file"`
	Color    string
}

// file is the on-disk layout. Every block and attribute is optional and
// decodes to a pointer, so an explicit zero is told apart from a missing
// value.
type file struct {
	Table *fileTable `hcl:"table,block"`
	AI    *fileAI    `hcl:"ai,block"`
	UI    *fileUI    `hcl:"ui,block"`
}

type fileTable struct {
	Players       *int   `hcl:"players,optional"`
	StartingChips *int   `hcl:"starting_chips,optional"`
	Seed          *int64 `hcl:"seed,optional"`
}

type fileAI struct {
	Strategy     *string  `hcl:"strategy,optional"`
	ThinkDelayMS *int     `hcl:"think_delay_ms,optional"`
	RaiseChance  *float64 `hcl:"raise_chance,optional"`
	FoldChance   *float64 `hcl:"fold_chance,optional"`
}

type fileUI struct {
	LogLevel *string `hcl:"log_level,optional"`
	LogFile  *string `hcl:"log_file,optional"`
	Color    *string `hcl:"color,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	defaults := bot.DefaultRandomConfig()
	return &Config{
		Table: TableSettings{
			Players:       5,
			StartingChips: 1000,
		},
		AI: AISettings{
			Strategy:     bot.StrategyRandom,
			ThinkDelayMS: 400,
			RaiseChance:  &defaults.RaiseChance,
			FoldChance:   &defaults.FoldChance,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "holdem.log",
			Color:    ColorAuto,
		},
	}
}

// Load reads configuration from an HCL file, fills in defaults and then
// applies HOLDEM_* environment overrides. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			parsed, err := parseFile(filename)
			if err != nil {
				return nil, err
			}
			cfg.merge(parsed)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

func parseFile(filename string) (*file, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var parsed file
	diags = gohcl.DecodeBody(f.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &parsed, nil
}

// merge copies the values set in the file over the defaults
func (c *Config) merge(f *file) {
	if t := f.Table; t != nil {
		set(&c.Table.Players, t.Players)
		set(&c.Table.StartingChips, t.StartingChips)
		set(&c.Table.Seed, t.Seed)
	}

	if a := f.AI; a != nil {
		set(&c.AI.Strategy, a.Strategy)
		set(&c.AI.ThinkDelayMS, a.ThinkDelayMS)
		if a.RaiseChance != nil {
			c.AI.RaiseChance = a.RaiseChance
		}
		if a.FoldChance != nil {
			c.AI.FoldChance = a.FoldChance
		}
	}

	if u := f.UI; u != nil {
		set(&c.UI.LogLevel, u.LogLevel)
		set(&c.UI.LogFile, u.LogFile)
		set(&c.UI.Color, u.Color)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Players < MinPlayers || c.Table.Players > MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", MinPlayers, MaxPlayers, c.Table.Players)
	}

	if c.Table.StartingChips < MinStartingChips {
		return fmt.Errorf("starting chips must be at least %d, got %d", MinStartingChips, c.Table.StartingChips)
	}

	if !slices.Contains(bot.Strategies(), c.AI.Strategy) {
		return fmt.Errorf("invalid AI strategy %q, expected one of %v", c.AI.Strategy, bot.Strategies())
	}

	if c.AI.ThinkDelayMS < 0 {
		return fmt.Errorf("think delay cannot be negative")
	}

	if err := c.AI.RandomConfig().Validate(); err != nil {
		return fmt.Errorf("invalid AI settings: %w", err)
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q, expected auto, always or never", c.UI.Color)
	}

	return nil
}

// ThinkDelay is how long computer players pause before acting
func (a AISettings) ThinkDelay() time.Duration {
	return time.Duration(a.ThinkDelayMS) * time.Millisecond
}

// RandomConfig converts the settings for bot.NewRandomBot
func (a AISettings) RandomConfig() bot.RandomConfig {
	cfg := bot.DefaultRandomConfig()
	if a.RaiseChance != nil {
		cfg.RaiseChance = *a.RaiseChance
	}
	if a.FoldChance != nil {
		cfg.FoldChance = *a.FoldChance
	}
	cfg.ThinkDelay = a.ThinkDelay()
	return cfg
}

// GetLogLevel returns the parsed log level, defaulting to info
func (c *Config) GetLogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
