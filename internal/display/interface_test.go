package display

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-showdown/internal/bot"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/game"
	"github.com/lox/holdem-showdown/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterface(t *testing.T) *TUIInterface {
	t.Helper()
	return NewTestInterface(log.New(io.Discard), Options{Rand: randutil.New(1), OddsSamples: 200})
}

func inject(t *testing.T, ti *TUIInterface, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, ti.Model().InjectAction(line))
	}
}

func logText(ti *TUIInterface) string {
	return strings.Join(ti.Model().GetCapturedLog(), "\n")
}

// facingBet is the human's view with 50 to call, 100 chips behind and two
// opponents still in
func facingBet() (game.TableView, []game.ValidAction) {
	view := game.TableView{
		Street:     game.PreFlop,
		Pot:        70,
		CurrentBet: 50,
		Players: []game.PlayerView{
			{Seat: 0, Name: "You", Type: game.Human, Chips: 100, HoleCards: deck.MustParseCards("As Kd")},
			{Seat: 1, Name: "Player 2", Type: game.AI, Chips: 950, Bet: game.Placed(50)},
			{Seat: 2, Name: "Player 3", Type: game.AI, Chips: 980, Bet: game.Placed(20)},
		},
		ActingSeat: 0,
	}
	valid := []game.ValidAction{
		{Action: game.Fold},
		{Action: game.Call, MinAmount: 50, MaxAmount: 50},
		{Action: game.Raise, MinAmount: 51, MaxAmount: 100},
	}
	return view, valid
}

func TestPromptRepromptsOnBadInput(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	inject(t, ti, "dance", "raise 500", "raise 20", "raise 80")

	d, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Decision{Action: game.Raise, Amount: 80}, d)

	text := logText(ti)
	assert.Contains(t, text, "Your turn")
	assert.Contains(t, text, `unknown command "dance"`)
	assert.Contains(t, text, "don't have enough chips to bet 500")
	assert.Contains(t, text, "at least the current bet 50")
}

func TestPromptRejectsCheckFacingABet(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	inject(t, ti, "check", "call")

	d, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Call, d.Action)
	assert.Contains(t, logText(ti), "you can't check, 50 to call")
}

func TestPromptInfoCommands(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	inject(t, ti, "pot", "hand", "players", "odds", "", "help", "call")

	d, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Call, d.Action)

	text := logText(ti)
	assert.Contains(t, text, "Pot: 70  Current bet: 50  To call: 50")
	assert.Contains(t, text, "Better than 94% of starting hands")
	assert.Contains(t, text, "  You: 100")
	assert.Contains(t, text, "  Player 2: 950")
	assert.Contains(t, text, "Against 2 opponents: win")
	assert.Contains(t, text, "(200 deals)")
	assert.Contains(t, text, "It's your turn")
	assert.Contains(t, text, "Commands:")
}

func TestPromptHandOnTheFlop(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	view.Street = game.Flop
	view.Community = deck.MustParseCards("Ah Ks 2c")
	inject(t, ti, "hand", "fold")

	d, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Action)
	assert.Contains(t, logText(ti), "Best hand so far: Two Pair")
}

func TestPromptQuit(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	inject(t, ti, "quit")

	d, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Quit, d.Action)
}

func TestPromptCancelled(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ti.Prompt(ctx, view, valid)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPromptTracksTurn(t *testing.T) {
	ti := newTestInterface(t)
	view, valid := facingBet()
	inject(t, ti, "fold")

	_, err := ti.Prompt(context.Background(), view, valid)
	require.NoError(t, err)

	assert.Nil(t, ti.Model().turn, "turn is cleared once the decision is made")
	assert.Equal(t, 70, ti.Model().pot)
}

func TestWaitForContinue(t *testing.T) {
	ti := newTestInterface(t)
	inject(t, ti, "bet 10", "pot", "help", "")

	more, err := ti.WaitForContinue(context.Background())
	require.NoError(t, err)
	assert.True(t, more)

	text := logText(ti)
	assert.Contains(t, text, "No round in progress, press Enter to deal")
	assert.Contains(t, text, "No round in progress\n")
	assert.Contains(t, text, "Commands:")

	inject(t, ti, "q")
	more, err = ti.WaitForContinue(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
}

func TestInterfacePlaysARound(t *testing.T) {
	ti := newTestInterface(t)
	session, engine := game.NewTestGameEngine()
	engine.EventBus().Subscribe(ti)

	agents := []game.Agent{
		game.NewHumanAgent(ti.Prompt),
		bot.NewCallBot(),
		bot.NewCallBot(),
	}
	inject(t, ti, "check", "check", "check", "check")

	result, err := engine.PlayRound(context.Background(), agents)
	require.NoError(t, err)
	assert.True(t, result.Contested())
	assert.Equal(t, 3000, session.TotalChips())

	text := logText(ti)
	assert.Contains(t, text, "Round 1 • 3 players • You bet first")
	assert.Contains(t, text, "You check")
	assert.Contains(t, text, "Player 2 checks")
	assert.Contains(t, text, "*** RIVER ***")
	assert.Contains(t, text, "*** SHOWDOWN ***")
	assert.Contains(t, text, "End of round, chip counts:")

	require.Len(t, ti.Model().players, 3)
	assert.Zero(t, ti.Model().pot)
}
