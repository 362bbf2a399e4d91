package main

import (
	"fmt"
	"time"

	"github.com/lox/holdem-showdown/internal/bot"
	"github.com/lox/holdem-showdown/internal/fileutil"
	"github.com/lox/holdem-showdown/internal/randutil"
	"github.com/lox/holdem-showdown/internal/simulator"
	"github.com/lox/holdem-showdown/internal/statistics"
)

// SimulateCmd runs all-bot games headlessly
type SimulateCmd struct {
	Games       int           `short:"g" default:"100" help:"Number of games"`
	Players     int           `short:"p" default:"5" help:"Players per game"`
	Rounds      int           `short:"r" default:"50" help:"Maximum rounds per game"`
	Chips       int           `default:"1000" help:"Starting chips per player"`
	Workers     int           `short:"w" default:"0" help:"Games played in parallel (0 for one per CPU)"`
	Strategy    string        `default:"random" enum:"random,call,fold" help:"Bot strategy for every seat"`
	RaiseChance float64       `default:"0.25" help:"Random bot raise probability"`
	FoldChance  float64       `default:"0.25" help:"Random bot fold probability"`
	Seed        *int64        `help:"Seed for reproducible results"`
	Timeout     time.Duration `default:"30s" help:"Time limit per game"`
	LogLevel    string        `default:"warn" help:"Log level (debug, info, warn, error)"`
	Output      string        `short:"o" type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run() error {
	logger, err := stderrLogger(c.LogLevel, "simulate")
	if err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	}
	seed = randutil.Seed(seed)

	cfg := simulator.Config{
		Games:         c.Games,
		Players:       c.Players,
		Rounds:        c.Rounds,
		StartingChips: c.Chips,
		Workers:       c.Workers,
		Strategy:      c.Strategy,
		Random:        bot.RandomConfig{RaiseChance: c.RaiseChance, FoldChance: c.FoldChance},
		Seed:          seed,
		Timeout:       c.Timeout,
		Logger:        logger,
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	start := time.Now()
	stats, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" %d games • %d players • %s bots ", c.Games, c.Players, c.Strategy)))
	fmt.Println()
	fmt.Println(simulator.Summary(stats))
	elapsed := time.Since(start)
	fmt.Println(dimStyle.Render(fmt.Sprintf("\nseed %d • %s", seed, elapsed.Round(time.Millisecond))))

	if c.Output == "" {
		return nil
	}
	report := statistics.NewReport(stats, statistics.ReportMetadata{
		Seed:            seed,
		Strategy:        c.Strategy,
		Players:         c.Players,
		StartTime:       start,
		DurationSeconds: elapsed.Seconds(),
	})
	data, err := report.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.Output, data, 0o644); err != nil {
		return err
	}
	logger.Info("Wrote report", "path", c.Output)
	return nil
}
