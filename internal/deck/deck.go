package deck

import (
	"math/rand/v2"
)

// DeckSize is the number of cards in a fresh deck
const DeckSize = NumSuits * NumRanks

// Deck is an ordered, mutable collection of cards. The top of the deck is
// the end of the slice: Deal removes the last card.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a standard 52-card deck in suit-major order. The rng is used
// by Shuffle; pass a seeded one for reproducible games.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewShuffled creates a new deck and shuffles it once
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// Stacked creates a deck that deals exactly the given cards, in order.
// Shuffle on a stacked deck uses the global source.
func Stacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle() {
	if d.rng == nil {
		rand.Shuffle(len(d.cards), func(i, j int) {
			d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		})
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. ok is false once the deck is
// exhausted.
func (d *Deck) Deal() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	last := len(d.cards) - 1
	card = d.cards[last]
	d.cards = d.cards[:last]
	return card, true
}

// DealN deals up to n cards from the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Burn discards the top card, reporting whether one was available
func (d *Deck) Burn() bool {
	_, ok := d.Deal()
	return ok
}

// Remove takes specific cards out of the deck, wherever they are. Used when
// some cards are already known (e.g. odds calculations).
func (d *Deck) Remove(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	skip := make(map[Card]bool, len(cards))
	for _, c := range cards {
		skip[c] = true
	}
	kept := d.cards[:0]
	for _, c := range d.cards {
		if !skip[c] {
			kept = append(kept, c)
		}
	}
	d.cards = kept
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}
