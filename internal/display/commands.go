package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-showdown/internal/game"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingAmount  = errors.New("missing amount")
	ErrBadAmount      = errors.New("amount must be a positive whole number")
)

// CommandKind identifies what the player typed
type CommandKind int

const (
	CmdContinue CommandKind = iota // empty input
	CmdFold
	CmdCheck
	CmdCall
	CmdRaise
	CmdHand
	CmdPot
	CmdPlayers
	CmdOdds
	CmdHelp
	CmdQuit
)

var commandNames = map[CommandKind]string{
	CmdContinue: "continue",
	CmdFold:     "fold",
	CmdCheck:    "check",
	CmdCall:     "call",
	CmdRaise:    "raise",
	CmdHand:     "hand",
	CmdPot:      "pot",
	CmdPlayers:  "players",
	CmdOdds:     "odds",
	CmdHelp:     "help",
	CmdQuit:     "quit",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsAction reports whether the command answers a betting prompt
func (k CommandKind) IsAction() bool {
	switch k {
	case CmdFold, CmdCheck, CmdCall, CmdRaise:
		return true
	}
	return false
}

// Command is a parsed line of input
type Command struct {
	Kind   CommandKind
	Amount int
}

// Decision converts a betting command into a decision for the engine
func (c Command) Decision() game.Decision {
	switch c.Kind {
	case CmdFold:
		return game.Decision{Action: game.Fold}
	case CmdCheck:
		return game.Decision{Action: game.Check}
	case CmdCall:
		return game.Decision{Action: game.Call}
	case CmdRaise:
		return game.Decision{Action: game.Raise, Amount: c.Amount}
	case CmdQuit:
		return game.Decision{Action: game.Quit}
	}
	return game.Decision{}
}

var aliases = map[string]CommandKind{
	"f":       CmdFold,
	"fold":    CmdFold,
	"k":       CmdCheck,
	"ch":      CmdCheck,
	"check":   CmdCheck,
	"c":       CmdCall,
	"call":    CmdCall,
	"r":       CmdRaise,
	"raise":   CmdRaise,
	"b":       CmdRaise,
	"bet":     CmdRaise,
	"h":       CmdHand,
	"hand":    CmdHand,
	"p":       CmdPot,
	"pot":     CmdPot,
	"pl":      CmdPlayers,
	"players": CmdPlayers,
	"o":       CmdOdds,
	"odds":    CmdOdds,
	"?":       CmdHelp,
	"help":    CmdHelp,
	"q":       CmdQuit,
	"quit":    CmdQuit,
	"exit":    CmdQuit,
}

// ParseCommand parses one line of input. Raises name the new total bet:
// "bet 80", "raise 80" and "raise to 80" are the same command.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{Kind: CmdContinue}, nil
	}

	kind, ok := aliases[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q, type 'help' for a list", ErrUnknownCommand, parts[0])
	}
	args := parts[1:]

	if kind != CmdRaise {
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUnknownCommand, kind)
		}
		return Command{Kind: kind}, nil
	}

	if len(args) > 0 && args[0] == "to" {
		args = args[1:]
	}
	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w: usage: %s <amount>", ErrMissingAmount, parts[0])
	}
	if len(args) > 1 {
		return Command{}, fmt.Errorf("%w: usage: %s <amount>", ErrUnknownCommand, parts[0])
	}

	amount, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
	if err != nil || amount <= 0 {
		return Command{}, fmt.Errorf("%w: %q", ErrBadAmount, args[0])
	}
	return Command{Kind: CmdRaise, Amount: amount}, nil
}

const helpText = `Commands:
  call, c / check, k     match the current bet (free when nothing is owed)
  bet N, raise N, r N    raise the bet to a total of N
  fold, f                give up this round
  hand, h                show your cards, the board and your best hand
  pot, p                 show the pot and what you owe
  players, pl            show chip counts
  odds, o                estimate your chance of winning from here
  help, ?                show this help
  quit, q                leave the table
Press Enter between rounds to deal the next one.`
