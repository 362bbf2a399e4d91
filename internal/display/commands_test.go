package display

import (
	"testing"

	"github.com/lox/holdem-showdown/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"", Command{Kind: CmdContinue}},
		{"   ", Command{Kind: CmdContinue}},
		{"fold", Command{Kind: CmdFold}},
		{"F", Command{Kind: CmdFold}},
		{"check", Command{Kind: CmdCheck}},
		{"k", Command{Kind: CmdCheck}},
		{"call", Command{Kind: CmdCall}},
		{"c", Command{Kind: CmdCall}},
		{"bet 50", Command{Kind: CmdRaise, Amount: 50}},
		{"raise 80", Command{Kind: CmdRaise, Amount: 80}},
		{"raise to 80", Command{Kind: CmdRaise, Amount: 80}},
		{"r $120", Command{Kind: CmdRaise, Amount: 120}},
		{"hand", Command{Kind: CmdHand}},
		{"pot", Command{Kind: CmdPot}},
		{"players", Command{Kind: CmdPlayers}},
		{"odds", Command{Kind: CmdOdds}},
		{"?", Command{Kind: CmdHelp}},
		{"Quit", Command{Kind: CmdQuit}},
		{"exit", Command{Kind: CmdQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"dance", ErrUnknownCommand},
		{"call 20", ErrUnknownCommand},
		{"bet", ErrMissingAmount},
		{"raise to", ErrMissingAmount},
		{"bet lots", ErrBadAmount},
		{"bet -5", ErrBadAmount},
		{"bet 0", ErrBadAmount},
		{"bet 10 20", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCommand(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommandDecision(t *testing.T) {
	assert.Equal(t, game.Decision{Action: game.Raise, Amount: 40}, Command{Kind: CmdRaise, Amount: 40}.Decision())
	assert.Equal(t, game.Fold, Command{Kind: CmdFold}.Decision().Action)
	assert.Equal(t, game.Quit, Command{Kind: CmdQuit}.Decision().Action)

	assert.True(t, CmdCall.IsAction())
	assert.False(t, CmdOdds.IsAction())
	assert.Equal(t, "players", CmdPlayers.String())
}
