package game

import (
	"context"

	"github.com/lox/holdem-showdown/internal/deck"
)

// Action is what a player chooses to do on their turn
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	Quit
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    int    // For raises, the total street bet
	Reasoning string // Human-readable explanation
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action    Action
	MinAmount int // For calls the amount owed, for raises the minimum total bet
	MaxAmount int // For raises: street commitment plus remaining chips
}

// PlayerView is the read-only state of one seat
type PlayerView struct {
	Seat      int
	Name      string
	Type      PlayerType
	Chips     int
	Bet       BetState
	HoleCards []deck.Card // Only populated for the acting player
}

// TableView is the read-only state handed to an agent on its turn
type TableView struct {
	RoundID      string
	Round        int
	Street       Street
	Pot          int
	CurrentBet   int
	Community    []deck.Card
	Players      []PlayerView
	ActingSeat   int
	StartingSeat int
}

// Acting returns the view of the player whose turn it is
func (v TableView) Acting() PlayerView {
	return v.Players[v.ActingSeat]
}

// ToCall is the number of chips the acting player needs to match the bet
func (v TableView) ToCall() int {
	owed := v.CurrentBet - v.Acting().Bet.Amount()
	if owed < 0 {
		return 0
	}
	return owed
}

// Agent represents any entity (human or AI) that can make decisions for a player.
// Agents receive immutable state and return decisions; the engine applies them.
type Agent interface {
	Decide(ctx context.Context, view TableView, validActions []ValidAction) (Decision, error)
}

// AgentFunc adapts a function into an Agent
type AgentFunc func(ctx context.Context, view TableView, validActions []ValidAction) (Decision, error)

func (f AgentFunc) Decide(ctx context.Context, view TableView, validActions []ValidAction) (Decision, error) {
	return f(ctx, view, validActions)
}

// FindAction returns the valid action entry for a, if present
func FindAction(validActions []ValidAction, a Action) (ValidAction, bool) {
	for _, va := range validActions {
		if va.Action == a {
			return va, true
		}
	}
	return ValidAction{}, false
}
