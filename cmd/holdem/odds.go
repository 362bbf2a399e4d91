package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
	"github.com/lox/holdem-showdown/internal/randutil"
)

// OddsCmd estimates equity against random opponents by Monte Carlo
type OddsCmd struct {
	Hole      string `arg:"" help:"Your two hole cards, e.g. 'AsKd'"`
	Board     string `arg:"" optional:"" help:"Community cards dealt so far, e.g. 'Td7s8h'"`
	Opponents int    `short:"o" default:"1" help:"Opponents holding random hands"`
	Samples   int    `short:"n" default:"100000" help:"Number of deals to simulate"`
	Workers   int    `default:"0" help:"Parallel workers (0 for one per CPU)"`
	Seed      *int64 `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run() error {
	hole, board, err := parseHoleAndBoard(c.Hole, c.Board)
	if err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(randutil.Seed(seed))

	start := time.Now()
	res, err := evaluator.EstimateEquity(context.Background(), hole, board, evaluator.EquityOptions{
		Opponents: c.Opponents,
		Samples:   c.Samples,
		Workers:   c.Workers,
	}, rng)
	if err != nil {
		return err
	}

	printOdds(os.Stdout, hole, board, c.Opponents, res, time.Since(start))
	return nil
}

func parseHoleAndBoard(holeStr, boardStr string) (hole, board []deck.Card, err error) {
	hole, err = deck.ParseCards(holeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("hole cards: %w", err)
	}
	if len(hole) != 2 {
		return nil, nil, fmt.Errorf("hole cards: need exactly 2 cards, got %d", len(hole))
	}
	if strings.TrimSpace(boardStr) != "" {
		board, err = deck.ParseCards(boardStr)
		if err != nil {
			return nil, nil, fmt.Errorf("board: %w", err)
		}
	}
	if len(board) > 5 {
		return nil, nil, fmt.Errorf("board: at most 5 cards, got %d", len(board))
	}
	return hole, board, nil
}

func printOdds(w io.Writer, hole, board []deck.Card, opponents int, res evaluator.EquityResult, elapsed time.Duration) {
	pct := func(n int) float64 { return 100 * float64(n) / float64(max(res.Samples, 1)) }

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(" %s vs %d random hand(s) ", deck.FormatCards(hole), opponents)))
	if len(board) > 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Board:"), deck.FormatCards(board))
	}
	fmt.Fprintf(w, "%s %.2f%%\n", labelStyle.Render("Equity:"), 100*res.Equity())
	fmt.Fprintf(w, "Win %.2f%%  Tie %.2f%%  Lose %.2f%%\n\n", pct(res.Wins), pct(res.Ties), pct(res.Losses))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Final hand\tDeals\tShare")
	for c := evaluator.StraightFlush; c >= evaluator.HighCard; c-- {
		n := res.Categories[c]
		if n == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f%%\n", c, n, pct(n))
	}
	tw.Flush()

	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("\n%d deals in %s", res.Samples, elapsed.Round(time.Millisecond))))
}
