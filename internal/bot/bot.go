// Package bot provides the computer opponents.
package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-showdown/internal/game"
)

// Strategy names accepted by New
const (
	StrategyRandom = "random"
	StrategyCall   = "call"
	StrategyFold   = "fold"
)

// ErrUnknownStrategy is returned by New for an unrecognised strategy
var ErrUnknownStrategy = errors.New("unknown bot strategy")

// Strategies lists the valid strategy names
func Strategies() []string {
	return []string{StrategyRandom, StrategyCall, StrategyFold}
}

// New creates an agent for the named strategy
func New(strategy string, rng *rand.Rand, clock quartz.Clock, logger *log.Logger, cfg RandomConfig) (game.Agent, error) {
	switch strategy {
	case StrategyRandom, "":
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return NewRandomBot(rng, clock, logger, cfg), nil
	case StrategyCall:
		return NewCallBot(), nil
	case StrategyFold:
		return NewFoldBot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
