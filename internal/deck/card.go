package deck

import "fmt"

// Suit represents a card suit. The numeric value doubles as the suit's
// weight in showdown tie-breaks, so the order must not change.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of distinct suits
const NumSuits = 4

// Suits lists every suit in index order
var Suits = [NumSuits]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the glyph for a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the English name of the suit
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Letter returns the single letter notation (c, d, h, s)
func (s Suit) Letter() byte {
	if !s.Valid() {
		return '?'
	}
	return "cdhs"[s]
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Two is 0 and Ace is 12; the ordinal is the
// rank's scoring weight.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks
const NumRanks = 13

// Ranks lists every rank in index order
var Ranks = [NumRanks]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

const rankLetters = "23456789TJQKA"

// String returns the short notation of a rank (2-9, T, J, Q, K, A)
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankLetters[r : r+1]
}

// Name returns the English name of the rank
func (r Rank) Name() string {
	names := [NumRanks]string{
		"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace",
	}
	if !r.Valid() {
		return "Unknown"
	}
	return names[r]
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable (suit, rank) pair. Cards are values and are copied
// whenever they move between the deck, players and the board.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the ASCII form accepted by ParseCards (e.g., "As")
func (c Card) Notation() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// LongName returns the card spelled out, e.g. "Ace of Spades"
func (c Card) LongName() string {
	return c.Rank.Name() + " of " + c.Suit.Name()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Index returns a dense 0..51 index for the card (suit-major)
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank)
}

// Valid reports whether both suit and rank are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}
