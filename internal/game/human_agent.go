package game

import (
	"context"
	"errors"
	"fmt"
)

// PromptFunc asks the human for a decision, blocking until one is made
type PromptFunc func(ctx context.Context, view TableView, validActions []ValidAction) (Decision, error)

// HumanAgent represents a human player that interacts through a user interface
type HumanAgent struct {
	prompt PromptFunc
}

// NewHumanAgent creates a new human agent with a prompt function
func NewHumanAgent(prompt PromptFunc) *HumanAgent {
	return &HumanAgent{prompt: prompt}
}

// Decide prompts the human for a decision
func (h *HumanAgent) Decide(ctx context.Context, view TableView, validActions []ValidAction) (Decision, error) {
	if h.prompt == nil {
		return Decision{Action: Fold, Reasoning: "No user interface available"}, nil
	}

	d, err := h.prompt(ctx, view, validActions)
	if err != nil {
		if errors.Is(err, ErrQuit) || ctx.Err() != nil {
			return d, err
		}
		return Decision{Action: Fold, Reasoning: fmt.Sprintf("Input error: %v", err)}, nil
	}
	return d, nil
}

// CheckDecision reports why a decision is not among the valid actions, so
// the interface can reject it and ask again
func CheckDecision(d Decision, view TableView, validActions []ValidAction) error {
	switch d.Action {
	case Fold, Quit:
		return nil
	case Check:
		if _, ok := FindAction(validActions, Check); ok {
			return nil
		}
		if _, ok := FindAction(validActions, Call); ok {
			return fmt.Errorf("%w: you can't check, %d to call", ErrInvalidAction, view.ToCall())
		}
		return fmt.Errorf("%w: you can't check and don't have enough chips to call %d", ErrInsufficientChips, view.ToCall())
	case Call:
		if _, ok := FindAction(validActions, Check); ok {
			return nil
		}
		if _, ok := FindAction(validActions, Call); ok {
			return nil
		}
		return fmt.Errorf("%w: you don't have enough chips to call %d", ErrInsufficientChips, view.ToCall())
	case Raise:
		if d.Amount < view.CurrentBet {
			return fmt.Errorf("%w: you must bet at least the current bet %d", ErrInvalidAmount, view.CurrentBet)
		}
		if d.Amount == view.CurrentBet {
			return CheckDecision(Decision{Action: Call}, view, validActions)
		}
		raise, ok := FindAction(validActions, Raise)
		if !ok || d.Amount > raise.MaxAmount {
			return fmt.Errorf("%w: you don't have enough chips to bet %d", ErrInsufficientChips, d.Amount)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, d.Action)
	}
}
