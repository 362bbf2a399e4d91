package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-showdown/internal/bot"
	"github.com/lox/holdem-showdown/internal/evaluator"
	"github.com/lox/holdem-showdown/internal/game"
	"github.com/lox/holdem-showdown/internal/gameid"
	"github.com/lox/holdem-showdown/internal/randutil"
	"github.com/lox/holdem-showdown/internal/statistics"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds configuration for running simulations
type Config struct {
	Games         int
	Players       int
	Rounds        int // per game; a game also ends when one player has every chip
	StartingChips int
	Workers       int // 0 picks NumCPU
	Strategy      string
	Random        bot.RandomConfig
	Seed          int64
	Timeout       time.Duration // per game, 0 for none
	Logger        *log.Logger
}

// DefaultConfig returns a small all-random-bot run
func DefaultConfig() Config {
	return Config{
		Games:         100,
		Players:       5,
		Rounds:        50,
		StartingChips: 1000,
		Strategy:      bot.StrategyRandom,
		Random:        bot.DefaultRandomConfig(),
		Seed:          1,
		Timeout:       30 * time.Second,
	}
}

func (c Config) validate() error {
	switch {
	case c.Games < 1:
		return fmt.Errorf("%w: games must be at least 1, got %d", ErrInvalidConfig, c.Games)
	case c.Players < 2:
		return fmt.Errorf("%w: players must be at least 2, got %d", ErrInvalidConfig, c.Players)
	case c.Rounds < 1:
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidConfig, c.Rounds)
	case c.StartingChips < 1:
		return fmt.Errorf("%w: starting chips must be positive, got %d", ErrInvalidConfig, c.StartingChips)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Simulator runs many independent all-bot games
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

type gameResult struct {
	index int
	stats *statistics.Statistics
}

// Run plays every game and aggregates the results. Each game gets its own
// seed drawn up front from Config.Seed, so the totals do not depend on
// scheduling or the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.config.validate(); err != nil {
		return nil, err
	}

	workers := s.config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, s.config.Games)

	master := randutil.New(s.config.Seed)
	seeds := make([]int64, s.config.Games)
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"players", s.config.Players,
		"rounds", s.config.Rounds,
		"workers", workers,
		"seed", s.config.Seed)
	start := time.Now()

	results := make(chan gameResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	collected := make([]*statistics.Statistics, s.config.Games)
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for r := range results {
			collected[r.index] = r.stats
		}
	}()

	for i, seed := range seeds {
		g.Go(func() error {
			stats, err := s.playGame(gctx, i, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results <- gameResult{index: i, stats: stats}
			return nil
		})
	}

	err := g.Wait()
	close(results)
	<-collectDone
	if err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range collected {
		total.Merge(stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"games", total.Games,
		"rounds", total.Rounds,
		"showdowns", total.Showdowns,
		"ties", total.Ties,
		"duration", time.Since(start))
	return total, nil
}

// playGame runs one game to completion. Everything it touches is created
// here, so games never share a deck, players or bets.
func (s *Simulator) playGame(ctx context.Context, index int, seed int64) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	rng := randutil.New(seed)
	players := game.SeatPlayers(s.config.Players, s.config.StartingChips)
	for _, p := range players {
		p.Type = game.AI
		p.Name = fmt.Sprintf("Player %d", p.Seat+1)
	}

	session, err := game.NewSession(players, randutil.Child(rng))
	if err != nil {
		return nil, err
	}

	randomCfg := s.config.Random
	randomCfg.ThinkDelay = 0
	agents := make([]game.Agent, len(players))
	for i := range agents {
		agents[i], err = bot.New(s.config.Strategy, randutil.Child(rng), quartz.NewReal(), s.logger, randomCfg)
		if err != nil {
			return nil, err
		}
	}

	engine := game.NewGameEngine(session, s.logger,
		game.WithIDGenerator(gameid.NewGenerator(randutil.Child(rng))))

	stats := &statistics.Statistics{Games: 1}
	for range s.config.Rounds {
		if session.Seated() < 2 {
			break
		}
		result, err := engine.PlayRound(ctx, agents)
		if err != nil {
			return nil, err
		}
		stats.Add(roundResult(index, seed, result))
	}

	s.logger.Debug("Game complete", "game", index+1, "rounds", stats.Rounds, "seed", seed)
	return stats, nil
}

func roundResult(index int, seed int64, r *game.RoundResult) statistics.RoundResult {
	out := statistics.RoundResult{
		Game:          index,
		Round:         r.Round,
		Seed:          seed,
		Winner:        r.Showdown.Winner,
		Pot:           r.Pot,
		Showdown:      r.Contested(),
		Tier:          r.Showdown.Tier,
		Tied:          r.Showdown.IsTie(),
		StreetReached: streetReached(len(r.Community)).String(),
	}
	if out.Showdown {
		for _, seat := range r.Showdown.Contenders {
			out.Categories = append(out.Categories, r.Scores[seat].Category)
		}
		out.WinningHand = r.Scores[r.Showdown.Winner].Category
	}
	return out
}

func streetReached(boardCards int) game.Street {
	switch {
	case boardCards >= 5:
		return game.River
	case boardCards == 4:
		return game.Turn
	case boardCards == 3:
		return game.Flop
	}
	return game.PreFlop
}

// Summary formats a report of the run
func Summary(stats *statistics.Statistics) string {
	var b strings.Builder
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(&b, "=== RESULTS ===\n")
	fmt.Fprintf(&b, "Games: %d  Rounds: %d\n", stats.Games, stats.Rounds)
	fmt.Fprintf(&b, "Showdowns: %d (%.1f%%)  Uncontested: %d  Unresolved ties: %d\n",
		stats.Showdowns, percent(stats.Showdowns, stats.Rounds), stats.Uncontested, stats.Ties)

	fmt.Fprintf(&b, "\n=== POT SIZE ===\n")
	fmt.Fprintf(&b, "Mean: %.1f  Median: %.1f  Std Dev: %.1f  Max: %d\n",
		stats.Mean(), stats.Median(), stats.StdDev(), stats.MaxPot)
	fmt.Fprintf(&b, "95%% CI: [%.1f, %.1f]  P5=%.0f P95=%.0f\n",
		low, high, stats.Percentile(0.05), stats.Percentile(0.95))

	fmt.Fprintf(&b, "\n=== SEATS ===\n")
	for seat, ss := range stats.Seats {
		fmt.Fprintf(&b, "Player %d: %d wins (%.1f%%), %d chips won\n",
			seat+1, ss.Wins, 100*stats.WinRate(seat), ss.ChipsWon)
	}

	fmt.Fprintf(&b, "\n=== DECIDED BY ===\n")
	for _, tier := range []evaluator.Tier{evaluator.TierUncontested, evaluator.TierCategory, evaluator.TierRankScore, evaluator.TierSuitScore} {
		fmt.Fprintf(&b, "%-15s %d\n", tier.String()+":", stats.Tiers[tier])
	}

	fmt.Fprintf(&b, "\n=== HANDS AT SHOWDOWN ===\n")
	for c := evaluator.StraightFlush; c >= evaluator.HighCard; c-- {
		fmt.Fprintf(&b, "%-16s %6d shown (%5.1f%%)  %6d won\n",
			c.String()+":", stats.Categories[c], 100*stats.CategoryShare(c), stats.WinningCategories[c])
	}
	return strings.TrimRight(b.String(), "\n")
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
