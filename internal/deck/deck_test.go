package deck

import (
	"testing"

	"github.com/lox/holdem-showdown/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	d := New(randutil.New(1))
	require.Equal(t, DeckSize, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.True(t, c.Valid(), "invalid card %v", c)
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDealExhaustion(t *testing.T) {
	d := NewShuffled(randutil.New(7))

	for i := 0; i < 52; i++ {
		_, ok := d.Deal()
		require.True(t, ok, "deal %d should succeed", i+1)
	}
	assert.True(t, d.IsEmpty())

	card, ok := d.Deal()
	assert.False(t, ok, "53rd deal must signal exhaustion")
	assert.Equal(t, Card{}, card)
}

func TestDealTakesFromTop(t *testing.T) {
	d := New(nil)
	cards := d.Cards()
	top := cards[len(cards)-1]

	got, ok := d.Deal()
	require.True(t, ok)
	assert.Equal(t, top, got)
	assert.Equal(t, 51, d.Remaining())
}

func TestShuffleIsSeeded(t *testing.T) {
	a := NewShuffled(randutil.New(42))
	b := NewShuffled(randutil.New(42))
	c := NewShuffled(randutil.New(43))

	assert.Equal(t, a.Cards(), b.Cards(), "same seed should produce same order")
	assert.NotEqual(t, a.Cards(), c.Cards(), "different seeds should differ")
	assert.ElementsMatch(t, a.Cards(), New(nil).Cards(), "shuffle must be a permutation")
}

func TestDealNAndBurn(t *testing.T) {
	d := NewShuffled(randutil.New(3))

	hand := d.DealN(2)
	assert.Len(t, hand, 2)
	assert.True(t, d.Burn())
	assert.Equal(t, 49, d.Remaining())

	rest := d.DealN(100)
	assert.Len(t, rest, 49)
	assert.False(t, d.Burn())
}

func TestRemoveAndReset(t *testing.T) {
	d := New(randutil.New(5))
	known := MustParseCards("AsKh")
	d.Remove(known...)
	assert.Equal(t, 50, d.Remaining())
	for _, c := range d.Cards() {
		assert.NotContains(t, known, c)
	}

	d.Reset()
	assert.Equal(t, DeckSize, d.Remaining())
}

func TestStackedDealsInOrder(t *testing.T) {
	cards := MustParseCards("AsKhQd")
	d := Stacked(cards...)

	assert.Equal(t, cards, d.DealN(3))
	_, ok := d.Deal()
	assert.False(t, ok)
}
