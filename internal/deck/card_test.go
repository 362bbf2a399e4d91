package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Card
	}{
		{"suited run", "AsKsQs", []Card{NewCard(Spades, Ace), NewCard(Spades, King), NewCard(Spades, Queen)}},
		{"every suit", "Ah9d2cTs", []Card{NewCard(Hearts, Ace), NewCard(Diamonds, Nine), NewCard(Clubs, Two), NewCard(Spades, Ten)}},
		{"separators", "5h, 4d 3c", []Card{NewCard(Hearts, Five), NewCard(Diamonds, Four), NewCard(Clubs, Three)}},
		{"lower case", "asKH", []Card{NewCard(Spades, Ace), NewCard(Hearts, King)}},
		{"empty", "", []Card{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardsErrors(t *testing.T) {
	for _, input := range []string{"XsKs", "AsKx", "AsK", "1h"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCards(input)
			assert.ErrorIs(t, err, ErrInvalidNotation)
		})
	}

	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardNames(t *testing.T) {
	ace := NewCard(Spades, Ace)
	assert.Equal(t, "A♠", ace.String())
	assert.Equal(t, "As", ace.Notation())
	assert.Equal(t, "Ace of Spades", ace.LongName())
	assert.False(t, ace.IsRed())

	ten := NewCard(Hearts, Ten)
	assert.True(t, ten.IsRed())
	assert.Equal(t, "A♠ T♥", FormatCards([]Card{ace, ten}))
}

func TestOrdinals(t *testing.T) {
	// rank and suit ordinals are scoring weights
	assert.Equal(t, Rank(0), Two)
	assert.Equal(t, Rank(12), Ace)
	assert.Equal(t, Suit(0), Clubs)
	assert.Equal(t, Suit(3), Spades)

	seen := map[int]bool{}
	for _, s := range Suits {
		for _, r := range Ranks {
			idx := NewCard(s, r).Index()
			require.True(t, idx >= 0 && idx < DeckSize, "index %d", idx)
			require.False(t, seen[idx], "duplicate index %d", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, DeckSize)
}
