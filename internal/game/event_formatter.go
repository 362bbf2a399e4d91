package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-showdown/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowReasonings bool // Include AI reasoning
	ShowHoleCards  bool // Show every contender's hole cards at showdown
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format dispatches on the event type. Unknown events format as "".
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case StreetChangeEvent:
		return ef.FormatStreetChange(e)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case ShowdownEvent:
		return ef.FormatShowdown(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	default:
		return ""
	}
}

// FormatPlayerAction formats a player action event into a human-readable string
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	name := event.Player.Name
	you := event.Player.Type == Human

	var text string
	switch event.Action {
	case Fold:
		text = fmt.Sprintf("%s %s", name, verb(you, "fold", "folds"))
	case Check:
		text = fmt.Sprintf("%s %s", name, verb(you, "check", "checks"))
	case Call:
		text = fmt.Sprintf("%s %s %d (pot now: %d)", name, verb(you, "call", "calls"), event.Amount, event.PotAfter)
	case Raise:
		text = fmt.Sprintf("%s %s to %d (pot now: %d)", name, verb(you, "raise", "raises"), event.Amount, event.PotAfter)
	default:
		text = fmt.Sprintf("%s: %s %d", name, event.Action, event.Amount)
	}

	if ef.opts.ShowReasonings && event.Reasoning != "" {
		text += fmt.Sprintf(" (%s)", event.Reasoning)
	}
	return text
}

// FormatStreetChange formats a street change event into a human-readable string
func (ef *EventFormatter) FormatStreetChange(event StreetChangeEvent) string {
	board := event.CommunityCards
	switch event.Street {
	case Flop:
		if len(board) >= 3 {
			return fmt.Sprintf("*** FLOP *** [%s]", deck.FormatCards(board[:3]))
		}
	case Turn:
		if len(board) >= 4 {
			return fmt.Sprintf("*** TURN *** [%s] [%s]", deck.FormatCards(board[:3]), board[3])
		}
	case River:
		if len(board) >= 5 {
			return fmt.Sprintf("*** RIVER *** [%s] [%s]", deck.FormatCards(board[:4]), board[4])
		}
	}
	return fmt.Sprintf("*** %s ***", strings.ToUpper(event.Street.String()))
}

// FormatRoundStart formats a round start event into a human-readable string
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	first := ""
	if event.StartingSeat >= 0 && event.StartingSeat < len(event.Players) {
		first = event.Players[event.StartingSeat].Name
	}
	return fmt.Sprintf("Round %d • %d players • %s bet first", event.Round, len(event.Players), first)
}

// FormatShowdown lists each contender's hand and how the winner was decided
func (ef *EventFormatter) FormatShowdown(event ShowdownEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** SHOWDOWN *** [%s]\n", deck.FormatCards(event.Community))
	for _, h := range event.Hands {
		winner := h.Seat == event.Result.Winner
		if ef.opts.ShowHoleCards || winner {
			fmt.Fprintf(&b, "%s: [%s] %s\n", h.Name, deck.FormatCards(h.HoleCards), h.Score.Category)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", h.Name, h.Score.Category)
		}
	}
	if event.Result.IsTie() {
		names := make([]string, 0, len(event.Result.Tied))
		for _, seat := range event.Result.Tied {
			for _, h := range event.Hands {
				if h.Seat == seat {
					names = append(names, h.Name)
				}
			}
		}
		fmt.Fprintf(&b, "Tie between %s\n", strings.Join(names, ", "))
	} else {
		fmt.Fprintf(&b, "Decided by %s\n", event.Result.Tier)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRoundEnd formats a round end event into a human-readable string
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	var b strings.Builder
	if event.Winner.Type == Human {
		fmt.Fprintf(&b, "You have the best hand and win %d\n", event.Pot)
	} else {
		fmt.Fprintf(&b, "%s has the best hand and wins %d\n", event.Winner.Name, event.Pot)
	}
	b.WriteString("End of round, chip counts:")
	for _, p := range event.Standings {
		fmt.Fprintf(&b, "\n  %s: %d", p.Name, p.Chips)
	}
	return b.String()
}

func verb(you bool, base, third string) string {
	if you {
		return base
	}
	return third
}
