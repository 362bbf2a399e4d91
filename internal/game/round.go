package game

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
)

var (
	ErrDeckExhausted = errors.New("deck exhausted")
	ErrTooFewPlayers = errors.New("need at least two players")
	ErrRoundComplete = errors.New("round already complete")
)

// Street is a betting round within a hand
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// communityCards is how many board cards each street reveals
var communityCards = map[Street]int{Flop: 3, Turn: 1, River: 1}

// Round holds the state of one played hand
type Round struct {
	ID           string
	Number       int
	Players      []*Player
	Street       Street
	Community    []deck.Card
	Pot          int
	CurrentBet   int
	Bets         []BetState
	StartingSeat int

	deck     *deck.Deck
	visited  []bool
	complete bool
}

// NewRound seats the players for round number (1-based). Players without
// chips sit the round out as folded.
func NewRound(number int, players []*Player, d *deck.Deck) (*Round, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}
	if number < 1 {
		return nil, fmt.Errorf("round number must be positive, got %d", number)
	}

	r := &Round{
		Number:       number,
		Players:      players,
		Bets:         make([]BetState, len(players)),
		StartingSeat: (number - 1) % len(players),
		deck:         d,
		visited:      make([]bool, len(players)),
	}
	for i, p := range players {
		p.ClearHand()
		if !p.CanPlay() {
			r.Bets[i] = Folded()
		}
	}
	return r, nil
}

// DealHoleCards gives every seated player two cards, one pass at a time
func (r *Round) DealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for i, p := range r.Players {
			if r.Bets[i].IsFolded() {
				continue
			}
			card, ok := r.deck.Deal()
			if !ok {
				return fmt.Errorf("dealing hole cards: %w", ErrDeckExhausted)
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

// AdvanceStreet moves to the next street, burning a card and turning the
// board for the flop, turn and river. Bets reset; folds persist.
func (r *Round) AdvanceStreet() error {
	if r.complete || r.Street >= Showdown {
		return ErrRoundComplete
	}

	next := r.Street + 1
	if n := communityCards[next]; n > 0 {
		if !r.deck.Burn() {
			return fmt.Errorf("burning before %s: %w", next, ErrDeckExhausted)
		}
		for i := 0; i < n; i++ {
			card, ok := r.deck.Deal()
			if !ok {
				return fmt.Errorf("dealing %s: %w", next, ErrDeckExhausted)
			}
			r.Community = append(r.Community, card)
		}
	}

	r.Street = next
	r.CurrentBet = 0
	resetStreet(r.Bets)
	clear(r.visited)
	return nil
}

// ActiveSeats returns the seats that have not folded
func (r *Round) ActiveSeats() []int {
	var seats []int
	for i, b := range r.Bets {
		if !b.IsFolded() {
			seats = append(seats, i)
		}
	}
	return seats
}

// ActiveCount returns how many players are still in the hand
func (r *Round) ActiveCount() int {
	n := 0
	for _, b := range r.Bets {
		if !b.IsFolded() {
			n++
		}
	}
	return n
}

// Complete reports whether the pot has been awarded
func (r *Round) Complete() bool {
	return r.complete
}

// NextSeat returns the seat after seat, wrapping around the table
func (r *Round) NextSeat(seat int) int {
	return (seat + 1) % len(r.Players)
}

// View builds the state an agent sees when seat is to act
func (r *Round) View(seat int) TableView {
	players := make([]PlayerView, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerView{
			Seat:  p.Seat,
			Name:  p.Name,
			Type:  p.Type,
			Chips: p.Chips,
			Bet:   r.Bets[i],
		}
		if i == seat {
			players[i].HoleCards = append([]deck.Card(nil), p.HoleCards...)
		}
	}

	return TableView{
		RoundID:      r.ID,
		Round:        r.Number,
		Street:       r.Street,
		Pot:          r.Pot,
		CurrentBet:   r.CurrentBet,
		Community:    append([]deck.Card(nil), r.Community...),
		Players:      players,
		ActingSeat:   seat,
		StartingSeat: r.StartingSeat,
	}
}

// Outcome is the result of settling a round
type Outcome struct {
	Showdown evaluator.Showdown
	Scores   []evaluator.HandScore
	Winner   *Player
	Pot      int
}

// Settle evaluates every live hand, resolves the winner and awards the pot.
// A lone remaining player takes the pot without their hand being compared.
func (r *Round) Settle() (Outcome, error) {
	if r.complete {
		return Outcome{}, ErrRoundComplete
	}

	scores := make([]evaluator.HandScore, len(r.Players))
	if r.ActiveCount() > 1 {
		for i, p := range r.Players {
			if r.Bets[i].IsFolded() {
				continue
			}
			score, err := evaluator.EvaluateHand(p.HoleCards, r.Community)
			if err != nil {
				return Outcome{}, fmt.Errorf("evaluating %s: %w", p.Name, err)
			}
			scores[i] = score
		}
	}

	sd, err := evaluator.Resolve(scores, r.Bets)
	if err != nil {
		return Outcome{}, err
	}

	winner := r.Players[sd.Winner]
	out := Outcome{
		Showdown: sd,
		Scores:   scores,
		Winner:   winner,
		Pot:      r.Pot,
	}
	winner.Chips += r.Pot
	r.Pot = 0
	r.Street = Showdown
	r.complete = true
	return out, nil
}
