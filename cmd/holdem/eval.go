package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
)

// EvalCmd scores one or more hands and, given several, runs them through a
// showdown
type EvalCmd struct {
	Hands []string `arg:"" help:"Hands to score, e.g. 'As Ks Ah Kh 2c'. Give several to compare them."`
	Board string   `short:"b" help:"Community cards shared by every hand"`
}

func (c *EvalCmd) Run() error {
	hands, board, err := parseEvalHands(c.Hands, c.Board)
	if err != nil {
		return err
	}

	scores := make([]evaluator.HandScore, len(hands))
	for i, hand := range hands {
		scores[i], err = evaluator.EvaluateHand(hand, board)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}

	var result *evaluator.Showdown
	if len(hands) > 1 {
		sd, err := evaluator.Resolve(scores, evaluator.RawBets(make([]int, len(hands))...))
		if err != nil {
			return err
		}
		result = &sd
	}

	printEval(os.Stdout, hands, board, scores, result)
	return nil
}

// parseEvalHands parses every hand and the board, rejecting any card that
// appears twice across them
func parseEvalHands(handStrs []string, boardStr string) ([][]deck.Card, []deck.Card, error) {
	seen := map[deck.Card]string{}
	claim := func(cards []deck.Card, owner string) error {
		for _, card := range cards {
			if prev, ok := seen[card]; ok {
				return fmt.Errorf("%s appears in both %s and %s", card, prev, owner)
			}
			seen[card] = owner
		}
		return nil
	}

	var board []deck.Card
	if strings.TrimSpace(boardStr) != "" {
		var err error
		if board, err = deck.ParseCards(boardStr); err != nil {
			return nil, nil, fmt.Errorf("board: %w", err)
		}
		if err := claim(board, "the board"); err != nil {
			return nil, nil, err
		}
	}

	hands := make([][]deck.Card, 0, len(handStrs))
	for i, s := range handStrs {
		hand, err := deck.ParseCards(s)
		if err != nil {
			return nil, nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if err := claim(hand, fmt.Sprintf("hand %d", i+1)); err != nil {
			return nil, nil, err
		}
		hands = append(hands, hand)
	}
	return hands, board, nil
}

func printEval(w io.Writer, hands [][]deck.Card, board []deck.Card, scores []evaluator.HandScore, result *evaluator.Showdown) {
	if len(board) > 0 {
		fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Board:"), deck.FormatCards(board))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Hand\tCards\tCategory\tRank score\tSuit score")
	for i, hand := range hands {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", i+1, deck.FormatCards(hand), scores[i].Category, scores[i].RankScore, scores[i].SuitScore)
	}
	tw.Flush()

	if result == nil {
		return
	}
	fmt.Fprintln(w)
	if result.IsTie() {
		tied := make([]string, len(result.Tied))
		for i, seat := range result.Tied {
			tied[i] = fmt.Sprint(seat + 1)
		}
		fmt.Fprintf(w, "%s hands %s cannot be separated, hand %d takes the pot\n",
			labelStyle.Render("Tie:"), strings.Join(tied, ", "), result.Winner+1)
		return
	}
	fmt.Fprintf(w, "%s hand %d, decided by %s\n", labelStyle.Render("Winner:"), result.Winner+1, result.Tier)
}
