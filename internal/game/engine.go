package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
	"github.com/lox/holdem-showdown/internal/gameid"
)

// ErrQuit is returned when a player asks to leave the game
var ErrQuit = errors.New("player quit")

// defaultMaxAttempts is how many invalid decisions an agent may make
// before it is folded
const defaultMaxAttempts = 3

// GameEngine handles the core game loop logic that is shared between
// interactive play and simulation
type GameEngine struct {
	session     *Session
	logger      *log.Logger
	eventBus    EventBus
	clock       quartz.Clock
	ids         *gameid.Generator
	maxAttempts int
}

// EngineOption configures a GameEngine
type EngineOption func(*GameEngine)

// WithEventBus publishes events on bus instead of a private one
func WithEventBus(bus EventBus) EngineOption {
	return func(ge *GameEngine) { ge.eventBus = bus }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) EngineOption {
	return func(ge *GameEngine) { ge.clock = clock }
}

// WithIDGenerator sets the generator for round IDs
func WithIDGenerator(g *gameid.Generator) EngineOption {
	return func(ge *GameEngine) { ge.ids = g }
}

// WithMaxAttempts sets how many invalid decisions are tolerated per turn
func WithMaxAttempts(n int) EngineOption {
	return func(ge *GameEngine) { ge.maxAttempts = n }
}

// NewGameEngine creates a new game engine for a session
func NewGameEngine(session *Session, logger *log.Logger, opts ...EngineOption) *GameEngine {
	ge := &GameEngine{
		session:     session,
		logger:      logger,
		eventBus:    NewEventBus(),
		clock:       quartz.NewReal(),
		ids:         gameid.NewGenerator(nil),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(ge)
	}
	return ge
}

// EventBus returns the event bus for subscribing to game events
func (ge *GameEngine) EventBus() EventBus {
	return ge.eventBus
}

// Session returns the session the engine plays
func (ge *GameEngine) Session() *Session {
	return ge.session
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	RoundID   string
	Round     int
	Winner    *Player
	Pot       int
	Showdown  evaluator.Showdown
	Scores    []evaluator.HandScore
	Community []deck.Card
	Actions   []PlayerAction
}

// Contested reports whether hands were compared to pick the winner
func (r *RoundResult) Contested() bool {
	return r.Showdown.Tier != evaluator.TierUncontested
}

// PlayerAction represents an action taken by a player during the round
type PlayerAction struct {
	Seat      int
	Name      string
	Street    Street
	Action    Action
	Amount    int
	Reasoning string
}

// PlayRound runs a complete round from deal to payout. agents is indexed
// by seat. If an agent quits, the partial result is returned with ErrQuit.
func (ge *GameEngine) PlayRound(ctx context.Context, agents []Agent) (*RoundResult, error) {
	if len(agents) != len(ge.session.Players) {
		return nil, fmt.Errorf("have %d agents for %d players", len(agents), len(ge.session.Players))
	}

	round, err := ge.session.NextRound()
	if err != nil {
		return nil, err
	}
	round.ID = ge.ids.Generate()

	result := &RoundResult{
		RoundID: round.ID,
		Round:   round.Number,
	}

	if err := round.DealHoleCards(); err != nil {
		return result, err
	}

	ge.logger.Info("Starting round",
		"round", round.Number,
		"id", round.ID,
		"first", round.Players[round.StartingSeat].Name,
		"seated", round.ActiveCount())
	ge.eventBus.Publish(RoundStartEvent{
		RoundID:      round.ID,
		Round:        round.Number,
		Players:      round.View(-1).Players,
		StartingSeat: round.StartingSeat,
		timestamp:    ge.clock.Now(),
	})

	for {
		if err := ge.playStreet(ctx, round, agents, result); err != nil {
			result.Community = round.Community
			result.Pot = round.Pot
			return result, err
		}
		ge.logger.Debug("Betting round complete", "street", round.Street, "pot", round.Pot)

		if round.ActiveCount() <= 1 || round.Street == River {
			break
		}
		if err := round.AdvanceStreet(); err != nil {
			return result, err
		}
		ge.logger.Debug("Dealt street", "street", round.Street, "board", deck.FormatCards(round.Community))
		ge.eventBus.Publish(StreetChangeEvent{
			Street:         round.Street,
			CommunityCards: append([]deck.Card(nil), round.Community...),
			Pot:            round.Pot,
			timestamp:      ge.clock.Now(),
		})
	}

	return ge.settle(round, result)
}

func (ge *GameEngine) settle(round *Round, result *RoundResult) (*RoundResult, error) {
	outcome, err := round.Settle()
	if err != nil {
		return result, err
	}

	result.Winner = outcome.Winner
	result.Pot = outcome.Pot
	result.Showdown = outcome.Showdown
	result.Scores = outcome.Scores
	result.Community = round.Community

	if result.Contested() {
		hands := make([]ShowdownHand, 0, len(outcome.Showdown.Contenders))
		for _, seat := range outcome.Showdown.Contenders {
			p := round.Players[seat]
			hands = append(hands, ShowdownHand{
				Seat:      seat,
				Name:      p.Name,
				HoleCards: append([]deck.Card(nil), p.HoleCards...),
				Score:     outcome.Scores[seat],
			})
		}
		ge.eventBus.Publish(ShowdownEvent{
			Community: append([]deck.Card(nil), round.Community...),
			Hands:     hands,
			Result:    outcome.Showdown,
			timestamp: ge.clock.Now(),
		})
	}

	var tied []string
	if outcome.Showdown.IsTie() {
		for _, seat := range outcome.Showdown.Tied {
			tied = append(tied, round.Players[seat].Name)
		}
		ge.logger.Warn("Unresolved tie at showdown, first tied player takes the pot",
			"tied", tied,
			"winner", outcome.Winner.Name,
			"pot", outcome.Pot)
	}

	ge.logger.Info("Round complete",
		"round", round.Number,
		"winner", outcome.Winner.Name,
		"pot", outcome.Pot,
		"decided_by", outcome.Showdown.Tier)

	if err := ge.validateChipConservation(); err != nil {
		ge.logger.Error("Chip conservation violation detected!", "error", err)
		return result, err
	}

	standings := make([]PlayerView, 0, len(round.Players))
	for _, p := range ge.session.Standings() {
		standings = append(standings, PlayerView{Seat: p.Seat, Name: p.Name, Type: p.Type, Chips: p.Chips})
	}
	ge.eventBus.Publish(RoundEndEvent{
		RoundID:   round.ID,
		Round:     round.Number,
		Winner:    round.View(-1).Players[outcome.Showdown.Winner],
		Pot:       outcome.Pot,
		Tied:      tied,
		Standings: standings,
		timestamp: ge.clock.Now(),
	})
	return result, nil
}

func (ge *GameEngine) playStreet(ctx context.Context, round *Round, agents []Agent, result *RoundResult) error {
	seat := round.StartingSeat
	for !round.StreetComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if round.Bets[seat].IsFolded() {
			seat = round.NextSeat(seat)
			continue
		}

		player := round.Players[seat]
		applied, err := ge.decide(ctx, round, seat, agents[seat])
		if err != nil {
			if errors.Is(err, ErrQuit) {
				ge.logger.Info("Player quit during round", "player", player.Name, "round", round.Number)
			}
			return err
		}

		result.Actions = append(result.Actions, PlayerAction{
			Seat:      seat,
			Name:      player.Name,
			Street:    round.Street,
			Action:    applied.Action,
			Amount:    applied.Amount,
			Reasoning: applied.Reasoning,
		})
		ge.logger.Debug("Player action",
			"player", player.Name,
			"action", applied.Action,
			"amount", applied.Amount,
			"reasoning", applied.Reasoning)
		ge.eventBus.Publish(PlayerActionEvent{
			Player:    round.View(-1).Players[seat],
			Action:    applied.Action,
			Amount:    applied.Amount,
			Street:    round.Street,
			Reasoning: applied.Reasoning,
			PotAfter:  round.Pot,
			timestamp: ge.clock.Now(),
		})

		seat = round.NextSeat(seat)
	}
	return nil
}

// decide asks the agent for a decision and applies it. Invalid decisions are
// logged and the agent is asked again; after maxAttempts the player folds.
func (ge *GameEngine) decide(ctx context.Context, round *Round, seat int, agent Agent) (Decision, error) {
	player := round.Players[seat]
	for attempt := 1; ; attempt++ {
		d, err := agent.Decide(ctx, round.View(seat), round.ValidActions(seat))
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return d, ErrQuit
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return d, ctxErr
			}
			ge.logger.Error("Agent failed to decide", "player", player.Name, "error", err)
			d = Decision{Action: Fold, Reasoning: fmt.Sprintf("decision error: %v", err)}
		}
		if d.Action == Quit {
			return d, ErrQuit
		}

		applied, err := round.Apply(seat, d)
		if err == nil {
			return applied, nil
		}
		ge.logger.Warn("Rejected decision",
			"player", player.Name,
			"action", d.Action,
			"amount", d.Amount,
			"attempt", attempt,
			"error", err)

		if attempt >= ge.maxAttempts {
			return round.Apply(seat, Decision{Action: Fold, Reasoning: "too many invalid decisions"})
		}
	}
}

// validateChipConservation checks that total chips haven't changed unexpectedly
func (ge *GameEngine) validateChipConservation() error {
	if got, want := ge.session.TotalChips(), ge.session.StartingChips(); got != want {
		return fmt.Errorf("chip conservation violation: have %d chips, started with %d", got, want)
	}
	return nil
}
