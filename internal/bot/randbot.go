package bot

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-showdown/internal/game"
)

// maxRaisePercent bounds the random raise size; squaring a value in
// [0, 0.25] keeps most raises small.
const maxRaisePercent = 25

// RandomConfig controls how often a RandomBot raises and folds. It calls
// the rest of the time.
type RandomConfig struct {
	RaiseChance float64
	FoldChance  float64
	ThinkDelay  time.Duration
}

// DefaultRandomConfig raises one time in four, folds one in four and
// calls otherwise
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{
		RaiseChance: 0.25,
		FoldChance:  0.25,
	}
}

// Validate checks the chances form a probability distribution
func (c RandomConfig) Validate() error {
	if c.RaiseChance < 0 || c.FoldChance < 0 || c.RaiseChance+c.FoldChance > 1 {
		return fmt.Errorf("raise chance %.2f and fold chance %.2f must be non-negative and sum to at most 1", c.RaiseChance, c.FoldChance)
	}
	if c.ThinkDelay < 0 {
		return fmt.Errorf("think delay must not be negative, got %s", c.ThinkDelay)
	}
	return nil
}

// RandomBot is the computer opponent: it raises, calls or folds at random
// without looking at its cards
type RandomBot struct {
	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger
	cfg    RandomConfig
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(rng *rand.Rand, clock quartz.Clock, logger *log.Logger, cfg RandomConfig) *RandomBot {
	return &RandomBot{
		rng:    rng,
		clock:  clock,
		logger: logger.WithPrefix("random-bot"),
		cfg:    cfg,
	}
}

// Decide waits out the think delay, then picks an action
func (b *RandomBot) Decide(ctx context.Context, view game.TableView, validActions []game.ValidAction) (game.Decision, error) {
	if b.cfg.ThinkDelay > 0 {
		timer := b.clock.NewTimer(b.cfg.ThinkDelay, "bot", "think")
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return game.Decision{}, ctx.Err()
		case <-timer.C:
		}
	}

	roll := b.rng.Float64()
	var d game.Decision
	switch {
	case roll < b.cfg.RaiseChance:
		d = b.raise(view, validActions)
	case roll < 1-b.cfg.FoldChance:
		d = call(validActions, "random call")
	default:
		d = game.Decision{Action: game.Fold, Reasoning: "random fold"}
	}

	b.logger.Debug("Random decision",
		"player", view.Acting().Name,
		"roll", roll,
		"action", d.Action,
		"amount", d.Amount)
	return d, nil
}

// raise bets currentBet + (r/100)^2 * (chips - currentBet) for r in
// [0, 25]. Small rolls round down to the current bet and become calls.
func (b *RandomBot) raise(view game.TableView, validActions []game.ValidAction) game.Decision {
	r := float64(b.rng.IntN(maxRaisePercent+1)) / 100
	chips := view.Acting().Chips
	amount := int(math.Pow(r, 2)*float64(chips-view.CurrentBet)) + view.CurrentBet

	raise, ok := game.FindAction(validActions, game.Raise)
	if !ok || amount <= view.CurrentBet {
		return call(validActions, "random raise too small, calling")
	}
	amount = min(max(amount, raise.MinAmount), raise.MaxAmount)
	return game.Decision{Action: game.Raise, Amount: amount, Reasoning: fmt.Sprintf("random raise (%.0f%%)", r*100)}
}
