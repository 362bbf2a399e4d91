package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-showdown/internal/bot"
	"github.com/lox/holdem-showdown/internal/config"
	"github.com/lox/holdem-showdown/internal/display"
	"github.com/lox/holdem-showdown/internal/game"
	"github.com/lox/holdem-showdown/internal/gameid"
	"github.com/lox/holdem-showdown/internal/randutil"
)

// PlayCmd runs an interactive game. Flags override the config file and
// environment.
type PlayCmd struct {
	Config     string  `short:"c" default:"holdem.hcl" help:"HCL config file (ignored if missing)"`
	Players    *int    `short:"p" help:"Players at the table, including you"`
	Chips      *int    `help:"Starting chips for every player"`
	Seed       *int64  `help:"Seed for a reproducible game"`
	Strategy   *string `help:"Computer player strategy (random, call, fold)"`
	ThinkDelay *int    `help:"Milliseconds a computer player waits before acting"`
	NoColor    bool    `help:"Disable colors"`
	LogFile    *string `help:"Where to write the debug log"`
	LogLevel   *string `help:"Log level (debug, info, warn, error)"`
	Reasons    bool    `help:"Show why computer players acted"`
}

// apply copies any flags that were given over the loaded config
func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Players != nil {
		cfg.Table.Players = *c.Players
	}
	if c.Chips != nil {
		cfg.Table.StartingChips = *c.Chips
	}
	if c.Seed != nil {
		cfg.Table.Seed = *c.Seed
	}
	if c.Strategy != nil {
		cfg.AI.Strategy = *c.Strategy
	}
	if c.ThinkDelay != nil {
		cfg.AI.ThinkDelayMS = *c.ThinkDelay
	}
	if c.NoColor {
		cfg.UI.Color = config.ColorNever
	}
	if c.LogFile != nil {
		cfg.UI.LogFile = *c.LogFile
	}
	if c.LogLevel != nil {
		cfg.UI.LogLevel = *c.LogLevel
	}
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	display.ConfigureColor(cfg.UI.Color)

	logger, logFile, err := openLogFile(cfg.UI.LogFile, cfg.GetLogLevel(), "holdem")
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	seed := randutil.Seed(cfg.Table.Seed)
	rng := randutil.New(seed)
	logger.Info("Starting game",
		"players", cfg.Table.Players,
		"chips", cfg.Table.StartingChips,
		"strategy", cfg.AI.Strategy,
		"seed", seed)

	session, err := game.NewSession(game.SeatPlayers(cfg.Table.Players, cfg.Table.StartingChips), randutil.Child(rng))
	if err != nil {
		return err
	}

	ui := display.NewTUIInterface(logger, display.Options{
		ShowReasonings: c.Reasons,
		Rand:           randutil.Child(rng),
	})

	clock := quartz.NewReal()
	engine := game.NewGameEngine(session, logger,
		game.WithClock(clock),
		game.WithIDGenerator(gameid.NewGenerator(randutil.Child(rng))))
	engine.EventBus().Subscribe(ui)

	agents := make([]game.Agent, len(session.Players))
	for i, p := range session.Players {
		if p.IsHuman() {
			agents[i] = game.NewHumanAgent(ui.Prompt)
			continue
		}
		agents[i], err = bot.New(cfg.AI.Strategy, randutil.Child(rng), clock, logger, cfg.AI.RandomConfig())
		if err != nil {
			return err
		}
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	if err := ui.Start(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	playErr := playRounds(ctx, engine, agents, ui, logger)
	if err := ui.Close(); err != nil {
		logger.Error("Failed to close interface", "error", err)
	}
	if playErr != nil {
		return playErr
	}

	fmt.Println(finalStandings(session, seed))
	return nil
}

// playRounds deals rounds until the human is out of chips, quits, or is
// the last player with chips
func playRounds(ctx context.Context, engine *game.GameEngine, agents []game.Agent, ui *display.TUIInterface, logger *log.Logger) error {
	session := engine.Session()
	for !session.Over() {
		_, err := engine.PlayRound(ctx, agents)
		switch {
		case errors.Is(err, game.ErrQuit):
			logger.Info("Player quit")
			return nil
		case ctx.Err() != nil:
			return nil
		case err != nil:
			logger.Error("Round failed", "error", err)
			return err
		}

		if session.Over() {
			break
		}
		more, err := ui.WaitForContinue(ctx)
		if err != nil || !more {
			logger.Info("Player left the table", "rounds", session.Rounds)
			return nil
		}
	}

	if session.HumanBusted() {
		ui.Log("You are out of chips. Game over.")
	} else {
		ui.Log("You have every chip at the table!")
	}
	_, _ = ui.WaitForContinue(ctx)
	return nil
}

func finalStandings(session *game.Session, seed int64) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Fprintf(&b, "\n\nRounds played: %d\n", session.Rounds)
	b.WriteString(labelStyle.Render("Final chip counts:"))
	for _, p := range session.Standings() {
		fmt.Fprintf(&b, "\n  %-10s %d", p.Name+":", p.Chips)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("seed %d", seed)))
	return b.String()
}
