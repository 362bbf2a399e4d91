package bot

import (
	"context"

	"github.com/lox/holdem-showdown/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct{}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (f *FoldBot) Decide(_ context.Context, _ game.TableView, validActions []game.ValidAction) (game.Decision, error) {
	return fold(validActions, "fold-bot folding"), nil
}

// fold checks for free when it can
func fold(validActions []game.ValidAction, reasoning string) game.Decision {
	if _, ok := game.FindAction(validActions, game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: "checking instead of folding"}
	}
	return game.Decision{Action: game.Fold, Reasoning: reasoning}
}
