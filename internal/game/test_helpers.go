package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/gameid"
	"github.com/lox/holdem-showdown/internal/randutil"
)

// TestSessionOption configures test session creation
type TestSessionOption func(*testSessionBuilder)

type testSessionBuilder struct {
	seed     int64
	seats    int
	chips    []int
	decks    DeckSource
	eventBus EventBus
}

// Test session options
func WithSeed(seed int64) TestSessionOption {
	return func(b *testSessionBuilder) { b.seed = seed }
}

func WithSeats(seats int) TestSessionOption {
	return func(b *testSessionBuilder) { b.seats = seats }
}

// WithChips sets each seat's starting stack; extra seats get the last value
func WithChips(chips ...int) TestSessionOption {
	return func(b *testSessionBuilder) { b.chips = chips }
}

// WithStackedDeck deals the given cards, in order, every round
func WithStackedDeck(cards ...deck.Card) TestSessionOption {
	return func(b *testSessionBuilder) {
		b.decks = func(int) *deck.Deck { return deck.Stacked(cards...) }
	}
}

func WithBus(bus EventBus) TestSessionOption {
	return func(b *testSessionBuilder) { b.eventBus = bus }
}

// NewTestSession creates a session for testing with sensible defaults:
// three seats of 1000 chips, the human in seat 0.
func NewTestSession(opts ...TestSessionOption) *Session {
	b := &testSessionBuilder{
		seed:  42,
		seats: 3,
		chips: []int{1000},
	}
	for _, opt := range opts {
		opt(b)
	}

	players := SeatPlayers(b.seats, 0)
	for i, p := range players {
		p.Chips = b.chips[min(i, len(b.chips)-1)]
	}

	var sessionOpts []SessionOption
	if b.decks != nil {
		sessionOpts = append(sessionOpts, WithDeckSource(b.decks))
	}
	s, err := NewSession(players, randutil.New(b.seed), sessionOpts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewTestGameEngine creates a session and engine for testing
func NewTestGameEngine(opts ...TestSessionOption) (*Session, *GameEngine) {
	b := &testSessionBuilder{seed: 42, eventBus: NewEventBus()}
	for _, opt := range opts {
		opt(b)
	}
	s := NewTestSession(opts...)
	engine := NewGameEngine(s, log.New(io.Discard),
		WithEventBus(b.eventBus),
		WithIDGenerator(gameid.NewGenerator(randutil.New(b.seed))),
	)
	return s, engine
}
