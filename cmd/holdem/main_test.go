package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/lox/holdem-showdown/internal/config"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHoleAndBoard(t *testing.T) {
	hole, board, err := parseHoleAndBoard("AsKd", "Td7s8h")
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	assert.Len(t, board, 3)

	hole, board, err = parseHoleAndBoard("As Kd", "")
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	assert.Empty(t, board)

	_, _, err = parseHoleAndBoard("AsKdQh", "")
	assert.ErrorContains(t, err, "exactly 2")

	_, _, err = parseHoleAndBoard("AsKd", "2c3c4c5c6c7c")
	assert.ErrorContains(t, err, "at most 5")

	_, _, err = parseHoleAndBoard("Zz", "")
	assert.ErrorContains(t, err, "hole cards")
}

func TestParseEvalHandsRejectsSharedCards(t *testing.T) {
	_, _, err := parseEvalHands([]string{"AsKs", "AsQd"}, "")
	assert.ErrorContains(t, err, "hand 1 and hand 2")

	_, _, err = parseEvalHands([]string{"AsKs"}, "As 2c 3d")
	assert.ErrorContains(t, err, "the board and hand 1")

	hands, board, err := parseEvalHands([]string{"AsKs", "QdQc"}, "2c 3d 9h")
	require.NoError(t, err)
	assert.Len(t, hands, 2)
	assert.Len(t, board, 3)
}

func TestPrintEval(t *testing.T) {
	hands, board, err := parseEvalHands([]string{"As Ks Ah Kh 2c", "Qs Qd Qh 3c 4d"}, "")
	require.NoError(t, err)

	scores := []evaluator.HandScore{evaluator.MustEvaluate("As Ks Ah Kh 2c"), evaluator.MustEvaluate("Qs Qd Qh 3c 4d")}
	result, err := evaluator.Resolve(scores, evaluator.RawBets(0, 0))
	require.NoError(t, err)

	var out bytes.Buffer
	printEval(&out, hands, board, scores, &result)

	text := out.String()
	assert.Contains(t, text, "Two Pair")
	assert.Contains(t, text, "46")
	assert.Contains(t, text, "Three of a Kind")
	assert.Contains(t, text, "hand 2, decided by hand category")
}

func TestPrintOdds(t *testing.T) {
	res := evaluator.EquityResult{Wins: 60, Ties: 10, Losses: 30, Samples: 100}
	res.Categories[evaluator.OnePair] = 70
	res.Categories[evaluator.HighCard] = 30

	var out bytes.Buffer
	printOdds(&out, deck.MustParseCards("AsKd"), nil, 2, res, time.Second)

	text := out.String()
	assert.Contains(t, text, "vs 2 random hand(s)")
	assert.Contains(t, text, "65.00%")
	assert.Contains(t, text, "Win 60.00%  Tie 10.00%  Lose 30.00%")
	assert.Contains(t, text, "One Pair")
	assert.NotContains(t, text, "Flush")
	assert.Contains(t, text, "100 deals")
}

func TestPlayFlagsOverrideConfig(t *testing.T) {
	players, seed, strategy, level := 3, int64(7), "call", "debug"
	cmd := PlayCmd{Players: &players, Seed: &seed, Strategy: &strategy, LogLevel: &level, NoColor: true}

	cfg := config.DefaultConfig()
	cmd.apply(cfg)

	assert.Equal(t, 3, cfg.Table.Players)
	assert.Equal(t, int64(7), cfg.Table.Seed)
	assert.Equal(t, "call", cfg.AI.Strategy)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, config.ColorNever, cfg.UI.Color)
	assert.Equal(t, 1000, cfg.Table.StartingChips, "unset flags leave the config alone")
	require.NoError(t, cfg.Validate())
}
