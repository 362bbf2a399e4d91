package game

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/lox/holdem-showdown/internal/deck"
)

// DeckSource supplies the deck for a round
type DeckSource func(round int) *deck.Deck

// Session holds the state that carries over between rounds: the seated
// players, their chips and how many rounds have been played.
type Session struct {
	Players []*Player
	Rounds  int

	rng       *rand.Rand
	deckFor   DeckSource
	chipTotal int
}

// SessionOption configures a session
type SessionOption func(*Session)

// WithDeckSource replaces the per-round shuffled deck, e.g. with a stacked
// deck in tests
func WithDeckSource(src DeckSource) SessionOption {
	return func(s *Session) { s.deckFor = src }
}

// NewSession creates a session for the given players
func NewSession(players []*Player, rng *rand.Rand, opts ...SessionOption) (*Session, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}

	s := &Session{
		Players: players,
		rng:     rng,
	}
	s.deckFor = func(int) *deck.Deck { return deck.NewShuffled(s.rng) }
	for _, opt := range opts {
		opt(s)
	}
	s.chipTotal = s.TotalChips()
	return s, nil
}

// NextRound starts the next round with a fresh deck
func (s *Session) NextRound() (*Round, error) {
	s.Rounds++
	return NewRound(s.Rounds, s.Players, s.deckFor(s.Rounds))
}

// Human returns the human player, or nil for an all-bot session
func (s *Session) Human() *Player {
	for _, p := range s.Players {
		if p.IsHuman() {
			return p
		}
	}
	return nil
}

// HumanBusted reports whether the human has run out of chips
func (s *Session) HumanBusted() bool {
	h := s.Human()
	return h != nil && !h.CanPlay()
}

// Seated returns how many players still have chips
func (s *Session) Seated() int {
	n := 0
	for _, p := range s.Players {
		if p.CanPlay() {
			n++
		}
	}
	return n
}

// Over reports whether no further round can be played
func (s *Session) Over() bool {
	return s.HumanBusted() || s.Seated() < 2
}

// TotalChips is the sum of every player's stack
func (s *Session) TotalChips() int {
	total := 0
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// StartingChips is the chip total when the session was created
func (s *Session) StartingChips() int {
	return s.chipTotal
}

// Standings returns the players ordered by chips, most first. Ties keep
// seat order.
func (s *Session) Standings() []*Player {
	out := slices.Clone(s.Players)
	slices.SortStableFunc(out, func(a, b *Player) int {
		return cmp.Compare(b.Chips, a.Chips)
	})
	return out
}
