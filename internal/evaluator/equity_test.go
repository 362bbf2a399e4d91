package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateEquityPocketAces(t *testing.T) {
	hole := deck.MustParseCards("AsAh")

	res, err := EstimateEquity(context.Background(), hole, nil, EquityOptions{
		Opponents: 1,
		Samples:   2000,
		Workers:   4,
	}, randutil.New(1))
	require.NoError(t, err)

	assert.Equal(t, 2000, res.Samples)
	assert.Equal(t, res.Samples, res.Wins+res.Ties+res.Losses)
	assert.Greater(t, res.Equity(), 0.6, "aces should be a big favourite heads up")
	assert.Equal(t, 0, res.Categories[HighCard], "pocket aces always make at least a pair")
}

func TestEstimateEquityDeterministic(t *testing.T) {
	hole := deck.MustParseCards("7c8c")
	board := deck.MustParseCards("9cTdKh")
	opts := EquityOptions{Opponents: 3, Samples: 500, Workers: 3}

	a, err := EstimateEquity(context.Background(), hole, board, opts, randutil.New(11))
	require.NoError(t, err)
	b, err := EstimateEquity(context.Background(), hole, board, opts, randutil.New(11))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEstimateEquityCompleteBoard(t *testing.T) {
	hole := deck.MustParseCards("2c3c")
	board := deck.MustParseCards("4c5c6cKdKh")

	res, err := EstimateEquity(context.Background(), hole, board, EquityOptions{Opponents: 2, Samples: 300}, randutil.New(5))
	require.NoError(t, err)
	assert.Equal(t, res.Samples, res.Categories[StraightFlush])
}

func TestEstimateEquityInvalidInput(t *testing.T) {
	ctx := context.Background()
	rng := randutil.New(1)

	tests := []struct {
		name  string
		hole  string
		board string
		opts  EquityOptions
		want  error
	}{
		{"one hole card", "As", "", EquityOptions{Opponents: 1, Samples: 10}, ErrInvalidEquityInput},
		{"no opponents", "AsKs", "", EquityOptions{Samples: 10}, ErrInvalidEquityInput},
		{"no samples", "AsKs", "", EquityOptions{Opponents: 1}, ErrInvalidEquityInput},
		{"too many opponents", "AsKs", "", EquityOptions{Opponents: 30, Samples: 10}, ErrInvalidEquityInput},
		{"card on board and in hand", "AsKs", "As2d3d", EquityOptions{Opponents: 1, Samples: 10}, ErrDuplicateCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateEquity(ctx, deck.MustParseCards(tt.hole), deck.MustParseCards(tt.board), tt.opts, rng)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEstimateEquityCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EstimateEquity(ctx, deck.MustParseCards("AsKs"), nil, EquityOptions{Opponents: 1, Samples: 1000}, randutil.New(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEquityWorkerDeckExhausted(t *testing.T) {
	hole := deck.MustParseCards("AsAh")

	// 25 opponents need 50 more hole cards than the 50 left in the deck
	_, err := runEquityWorker(context.Background(), hole, nil, 25, 1, randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidEquityInput)

	// 24 opponents leave two cards, too few for the board
	_, err = runEquityWorker(context.Background(), hole, nil, 24, 1, randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidEquityInput)
}
