package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-showdown/internal/deck"
)

// MaxCards is the largest hand Evaluate accepts (2 hole + 5 board)
const MaxCards = 7

// Errors returned by Evaluate for input that cannot form a hand
var (
	// ErrNoCards is returned for an empty hand
	ErrNoCards = errors.New("no cards to evaluate")
	// ErrTooManyCards is returned for more than MaxCards cards
	ErrTooManyCards = errors.New("too many cards to evaluate")
	// ErrDuplicateCard is returned when a card appears twice
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrInvalidCard is returned for a card with an unknown rank or suit
	ErrInvalidCard = errors.New("invalid card")
)

// HandScore is the ranking of a set of cards. Scores compare by Category,
// then RankScore, then SuitScore.
type HandScore struct {
	Category  Category
	RankScore int
	SuitScore int
}

// String returns a compact description, e.g. "Two Pair (46/7)"
func (h HandScore) String() string {
	return fmt.Sprintf("%s (%d/%d)", h.Category, h.RankScore, h.SuitScore)
}

// Compare returns 1 if h beats other, -1 if it loses and 0 on a full tie,
// applying the same tiers as Resolve.
func (h HandScore) Compare(other HandScore) int {
	switch {
	case h.Category != other.Category:
		return sign(int(h.Category) - int(other.Category))
	case h.RankScore != other.RankScore:
		return sign(h.RankScore - other.RankScore)
	default:
		return sign(h.SuitScore - other.SuitScore)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// counts holds the rank and suit frequency tables for a hand
type counts struct {
	ranks [deck.NumRanks]int
	suits [deck.NumSuits]int
}

func tally(cards []deck.Card) (counts, error) {
	var c counts
	var seen [deck.DeckSize]bool
	for _, card := range cards {
		if !card.Valid() {
			return counts{}, fmt.Errorf("%w: %+v", ErrInvalidCard, card)
		}
		if seen[card.Index()] {
			return counts{}, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
		}
		seen[card.Index()] = true
		c.ranks[card.Rank]++
		c.suits[card.Suit]++
	}
	return c, nil
}

// Evaluate classifies up to seven cards and computes their tie-break
// scores. The result depends only on the multiset of cards, never on their
// order. Hands of fewer than five cards can still pair up but never make a
// straight or flush.
func Evaluate(cards []deck.Card) (HandScore, error) {
	if len(cards) == 0 {
		return HandScore{}, ErrNoCards
	}
	if len(cards) > MaxCards {
		return HandScore{}, fmt.Errorf("%w: %d", ErrTooManyCards, len(cards))
	}

	c, err := tally(cards)
	if err != nil {
		return HandScore{}, err
	}

	return HandScore{
		Category:  c.category(),
		RankScore: c.rankScore(),
		SuitScore: c.suitScore(),
	}, nil
}

// EvaluateHand evaluates a player's private cards together with the
// community cards revealed so far.
func EvaluateHand(private, community []deck.Card) (HandScore, error) {
	all := make([]deck.Card, 0, len(private)+len(community))
	all = append(all, private...)
	all = append(all, community...)
	return Evaluate(all)
}

// MustEvaluate evaluates card notation and panics on error (for tests and
// tools)
func MustEvaluate(notation string) HandScore {
	score, err := Evaluate(deck.MustParseCards(notation))
	if err != nil {
		panic(fmt.Sprintf("failed to evaluate '%s': %v", notation, err))
	}
	return score
}

// category walks the categories from weakest to strongest; each matching
// check replaces the previous result, so the strongest match wins.
func (c counts) category() Category {
	pairs, triples, quads := c.multiples()
	flush := c.isFlush()
	straight := c.isStraight()

	category := HighCard
	if pairs >= 1 {
		category = OnePair
	}
	// exactly two; three pairs stay a single pair
	if pairs == 2 {
		category = TwoPair
	}
	if triples >= 1 {
		category = ThreeOfAKind
	}
	if straight {
		category = Straight
	}
	if flush {
		category = Flush
	}
	// The lowest triple is taken first; a second triple or any other pair
	// fills the house.
	if triples >= 2 || (triples == 1 && pairs >= 1) {
		category = FullHouse
	}
	if quads >= 1 {
		category = FourOfAKind
	}
	if straight && flush {
		category = StraightFlush
	}
	return category
}

// multiples counts ranks appearing exactly two, three and four times
func (c counts) multiples() (pairs, triples, quads int) {
	for _, n := range c.ranks {
		switch n {
		case 2:
			pairs++
		case 3:
			triples++
		case 4:
			quads++
		}
	}
	return pairs, triples, quads
}

func (c counts) isFlush() bool {
	for _, n := range c.suits {
		if n >= 5 {
			return true
		}
	}
	return false
}

// isStraight looks for five consecutive ranks. The ace only plays high.
func (c counts) isStraight() bool {
	run := 0
	for _, n := range c.ranks {
		if n == 0 {
			run = 0
			continue
		}
		run++
		if run >= 5 {
			return true
		}
	}
	return false
}

func (c counts) rankScore() int {
	score := 0
	for i, n := range c.ranks {
		score += i * n
	}
	return score
}

func (c counts) suitScore() int {
	score := 0
	for i, n := range c.suits {
		score += i * n
	}
	return score
}
