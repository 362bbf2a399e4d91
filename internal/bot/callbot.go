package bot

import (
	"context"

	"github.com/lox/holdem-showdown/internal/game"
)

// CallBot checks or calls every street, folding only when it cannot cover
// the bet
type CallBot struct{}

// NewCallBot creates a new CallBot instance
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (c *CallBot) Decide(_ context.Context, _ game.TableView, validActions []game.ValidAction) (game.Decision, error) {
	return call(validActions, "call-bot calling"), nil
}

// call checks when possible, otherwise calls, otherwise folds
func call(validActions []game.ValidAction, reasoning string) game.Decision {
	if _, ok := game.FindAction(validActions, game.Check); ok {
		return game.Decision{Action: game.Check, Reasoning: reasoning}
	}
	if va, ok := game.FindAction(validActions, game.Call); ok {
		return game.Decision{Action: game.Call, Amount: va.MinAmount, Reasoning: reasoning}
	}
	return game.Decision{Action: game.Fold, Reasoning: "can't cover the bet"}
}
