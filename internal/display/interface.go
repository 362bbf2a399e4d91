package display

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
	"github.com/lox/holdem-showdown/internal/game"
)

const defaultOddsSamples = 5000

// Options configures a TUIInterface
type Options struct {
	ShowReasonings bool       // append bot reasoning to their actions
	OddsSamples    int        // deals per odds estimate
	Rand           *rand.Rand // drives odds estimates; nil picks a random seed
}

// TUIInterface connects the game engine to the terminal. It subscribes to
// game events, prompts the human for decisions and asks whether to keep
// playing between rounds. All of its methods are called from the game
// goroutine; the model is only touched through the program's message loop.
type TUIInterface struct {
	model     *TUIModel
	program   *tea.Program
	logger    *log.Logger
	styles    TUIStyles
	formatter *game.EventFormatter
	rng       *rand.Rand
	samples   int

	// Table state tracked from events
	players    []game.PlayerView
	pot        int
	currentBet int

	started bool
	done    chan struct{}
	runErr  error
	closeMu sync.Once
}

// NewTUIInterface creates the full-screen interface
func NewTUIInterface(logger *log.Logger, opts Options) *TUIInterface {
	ti := newInterface(NewTUIModel(logger), logger, opts)
	ti.program = tea.NewProgram(ti.model, tea.WithAltScreen())
	return ti
}

// NewTestInterface creates an interface around a test-mode model with no
// program behind it. Input is fed with Model().InjectAction.
func NewTestInterface(logger *log.Logger, opts Options) *TUIInterface {
	return newInterface(NewTUIModelWithOptions(logger, true), logger, opts)
}

func newInterface(model *TUIModel, logger *log.Logger, opts Options) *TUIInterface {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	samples := opts.OddsSamples
	if samples <= 0 {
		samples = defaultOddsSamples
	}
	return &TUIInterface{
		model:     model,
		logger:    logger.WithPrefix("display"),
		styles:    model.styles,
		formatter: game.NewEventFormatter(game.FormattingOptions{ShowReasonings: opts.ShowReasonings}),
		rng:       rng,
		samples:   samples,
		done:      make(chan struct{}),
	}
}

// Model returns the underlying bubbletea model
func (ti *TUIInterface) Model() *TUIModel {
	return ti.model
}

// Start runs the program in the background
func (ti *TUIInterface) Start() error {
	if ti.program == nil {
		return nil
	}
	ti.started = true
	go func() {
		defer close(ti.done)
		if _, err := ti.program.Run(); err != nil {
			ti.runErr = err
			ti.logger.Error("TUI program error", "error", err)
		}
	}()
	return nil
}

// Close stops the program and waits for the terminal to be restored
func (ti *TUIInterface) Close() error {
	if ti.program == nil || !ti.started {
		return nil
	}
	ti.closeMu.Do(func() {
		ti.program.Send(QuitMsg{})
		<-ti.done
	})
	return ti.runErr
}

// send delivers a message to the model, directly when there is no program
func (ti *TUIInterface) send(msg tea.Msg) {
	if ti.program != nil {
		ti.program.Send(msg)
		return
	}
	switch msg := msg.(type) {
	case logMsg:
		for _, entry := range msg.entries {
			ti.model.AddLogEntry(entry)
		}
	default:
		ti.model.apply(msg)
	}
}

// Log appends lines to the game log
func (ti *TUIInterface) Log(format string, args ...any) {
	ti.send(logMsg{entries: strings.Split(fmt.Sprintf(format, args...), "\n")})
}

func (ti *TUIInterface) logError(err error) {
	ti.send(logMsg{entries: []string{ti.styles.Error.Render(err.Error())}})
}

// OnEvent writes each game event to the log and keeps the sidebar current
func (ti *TUIInterface) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		ti.players = append([]game.PlayerView(nil), e.Players...)
		ti.pot, ti.currentBet = 0, 0
		ti.send(logMsg{entries: []string{""}})
	case game.StreetChangeEvent:
		ti.pot, ti.currentBet = e.Pot, 0
		for i := range ti.players {
			if !ti.players[i].Bet.IsFolded() {
				ti.players[i].Bet = game.NotYetActed()
			}
		}
	case game.PlayerActionEvent:
		ti.pot = e.PotAfter
		if e.Action == game.Raise || e.Action == game.Call {
			ti.currentBet = max(ti.currentBet, e.Amount)
		}
		if e.Player.Seat >= 0 && e.Player.Seat < len(ti.players) {
			ti.players[e.Player.Seat] = e.Player
		}
	case game.RoundEndEvent:
		ti.players = append([]game.PlayerView(nil), e.Standings...)
		ti.pot, ti.currentBet = 0, 0
	}

	ti.send(tableMsg{players: append([]game.PlayerView(nil), ti.players...), pot: ti.pot, currentBet: ti.currentBet})

	if text := ti.formatter.Format(event); text != "" {
		if event.EventType() == game.EventTypeRoundStart {
			text = ti.styles.Header.Render(text)
		}
		ti.send(logMsg{entries: strings.Split(text, "\n")})
	}
}

// Prompt asks the human for a decision, re-prompting until the input is a
// legal action. It satisfies game.PromptFunc.
func (ti *TUIInterface) Prompt(ctx context.Context, view game.TableView, validActions []game.ValidAction) (game.Decision, error) {
	ti.send(turnMsg{view: &view, valid: validActions})
	defer ti.send(turnMsg{})

	me := view.Acting()
	if owed := view.ToCall(); owed > 0 {
		ti.Log("Your turn: %s, %d to call", ti.styles.FormatCards(me.HoleCards), owed)
	} else {
		ti.Log("Your turn: %s, nothing to call", ti.styles.FormatCards(me.HoleCards))
	}

	for {
		result, err := ti.waitForInput(ctx)
		if err != nil {
			return game.Decision{}, err
		}
		if result.Quit {
			return game.Decision{Action: game.Quit, Reasoning: "closed the table"}, nil
		}

		cmd, err := ParseCommand(result.Input)
		if err != nil {
			ti.logError(err)
			continue
		}

		switch {
		case cmd.Kind == CmdQuit:
			return cmd.Decision(), nil
		case cmd.Kind == CmdContinue:
			ti.Log("It's your turn, type 'help' for commands")
			continue
		case !cmd.Kind.IsAction():
			ti.showInfo(ctx, cmd, &view)
			continue
		}

		d := cmd.Decision()
		if err := game.CheckDecision(d, view, validActions); err != nil {
			ti.logError(err)
			continue
		}
		return d, nil
	}
}

// WaitForContinue blocks between rounds until the player presses Enter
// (true) or quits (false)
func (ti *TUIInterface) WaitForContinue(ctx context.Context) (bool, error) {
	ti.Log("%s", ti.styles.Info.Render("Press Enter to deal the next round, or type 'quit'"))
	for {
		result, err := ti.waitForInput(ctx)
		if err != nil {
			return false, err
		}
		if result.Quit {
			return false, nil
		}

		cmd, err := ParseCommand(result.Input)
		if err != nil {
			ti.logError(err)
			continue
		}
		switch {
		case cmd.Kind == CmdContinue:
			return true, nil
		case cmd.Kind == CmdQuit:
			return false, nil
		case cmd.Kind.IsAction():
			ti.Log("No round in progress, press Enter to deal")
		default:
			ti.showInfo(ctx, cmd, nil)
		}
	}
}

func (ti *TUIInterface) waitForInput(ctx context.Context) (ActionResult, error) {
	select {
	case <-ctx.Done():
		return ActionResult{}, ctx.Err()
	case result := <-ti.model.Actions():
		return result, nil
	}
}

// showInfo answers the informational commands. view is nil between rounds.
func (ti *TUIInterface) showInfo(ctx context.Context, cmd Command, view *game.TableView) {
	switch cmd.Kind {
	case CmdHelp:
		ti.Log("%s", helpText)
	case CmdPlayers:
		players := ti.players
		if view != nil {
			players = view.Players
		}
		for _, p := range players {
			status := ""
			if p.Bet.IsFolded() {
				status = " (folded)"
			}
			ti.Log("  %s: %d%s", p.Name, p.Chips, status)
		}
	case CmdPot, CmdHand, CmdOdds:
		if view == nil {
			ti.Log("No round in progress")
			return
		}
		switch cmd.Kind {
		case CmdPot:
			ti.Log("Pot: %d  Current bet: %d  To call: %d", view.Pot, view.CurrentBet, view.ToCall())
		case CmdHand:
			ti.showHand(*view)
		case CmdOdds:
			ti.showOdds(ctx, *view)
		}
	}
}

func (ti *TUIInterface) showHand(view game.TableView) {
	me := view.Acting()
	ti.Log("Your hand: %s  Board: %s", ti.styles.FormatCards(me.HoleCards), ti.styles.FormatCards(view.Community))

	if len(view.Community) == 0 {
		ti.Log("Better than %.0f%% of starting hands", deck.GetHandPercentile(me.HoleCards)*100)
		return
	}
	score, err := evaluator.EvaluateHand(me.HoleCards, view.Community)
	if err != nil {
		ti.logError(err)
		return
	}
	ti.Log("Best hand so far: %s", score.Category)
}

func (ti *TUIInterface) showOdds(ctx context.Context, view game.TableView) {
	opponents := -1
	for _, p := range view.Players {
		if !p.Bet.IsFolded() {
			opponents++
		}
	}
	if opponents < 1 {
		ti.Log("Everyone else has folded")
		return
	}

	res, err := evaluator.EstimateEquity(ctx, view.Acting().HoleCards, view.Community,
		evaluator.EquityOptions{Opponents: opponents, Samples: ti.samples}, ti.rng)
	if err != nil {
		ti.logError(err)
		return
	}
	ti.Log("Against %d opponents: win %.1f%%  tie %.1f%%  equity %.1f%% (%d deals)",
		opponents,
		100*float64(res.Wins)/float64(res.Samples),
		100*float64(res.Ties)/float64(res.Samples),
		100*res.Equity(),
		res.Samples)
}
