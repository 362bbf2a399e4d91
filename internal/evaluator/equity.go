package evaluator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidEquityInput is returned for impossible equity requests
var ErrInvalidEquityInput = errors.New("invalid equity input")

// EquityOptions configures a Monte Carlo equity run
type EquityOptions struct {
	Opponents int // random-hand opponents, at least 1
	Samples   int // total deals to simulate
	Workers   int // 0 picks min(NumCPU, 8)
}

// EquityResult aggregates the outcome of every simulated deal from the
// hero's point of view
type EquityResult struct {
	Wins    int
	Ties    int
	Losses  int
	Samples int

	// Categories counts the hero's final category per deal
	Categories [NumCategories]int
}

// Equity returns the share of pots won, counting unresolved ties as half
func (r EquityResult) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Samples)
}

func (r *EquityResult) merge(o EquityResult) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Losses += o.Losses
	r.Samples += o.Samples
	for i, n := range o.Categories {
		r.Categories[i] += n
	}
}

// EstimateEquity deals out the unknown cards many times and runs every deal
// through Evaluate and Resolve. Work is split across workers, each with its
// own generator derived from rng.
func EstimateEquity(ctx context.Context, hole, board []deck.Card, opts EquityOptions, rng *rand.Rand) (EquityResult, error) {
	if len(hole) != 2 {
		return EquityResult{}, fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidEquityInput, len(hole))
	}
	if len(board) > 5 {
		return EquityResult{}, fmt.Errorf("%w: board has %d cards", ErrInvalidEquityInput, len(board))
	}
	if opts.Opponents < 1 {
		return EquityResult{}, fmt.Errorf("%w: need at least one opponent", ErrInvalidEquityInput)
	}
	if opts.Samples <= 0 {
		return EquityResult{}, fmt.Errorf("%w: samples must be positive", ErrInvalidEquityInput)
	}
	known := append(slices.Clone(hole), board...)
	if _, err := tally(known); err != nil {
		return EquityResult{}, err
	}
	if need := len(known) + 2*opts.Opponents + (5 - len(board)); need > deck.DeckSize {
		return EquityResult{}, fmt.Errorf("%w: %d opponents need more than 52 cards", ErrInvalidEquityInput, opts.Opponents)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, opts.Samples)

	results := make([]EquityResult, workers)
	g, ctx := errgroup.WithContext(ctx)

	per, remainder := opts.Samples/workers, opts.Samples%workers
	for w := 0; w < workers; w++ {
		samples := per
		if w < remainder {
			samples++
		}
		workerRng := randutil.Child(rng)

		g.Go(func() error {
			res, err := runEquityWorker(ctx, hole, board, opts.Opponents, samples, workerRng)
			if err != nil {
				return err
			}
			results[w] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, r := range results {
		total.merge(r)
	}
	return total, nil
}

func runEquityWorker(ctx context.Context, hole, board []deck.Card, opponents, samples int, rng *rand.Rand) (EquityResult, error) {
	var res EquityResult

	players := opponents + 1
	scores := make([]HandScore, players)
	active := make([]RawBet, players)
	fullBoard := make([]deck.Card, 5)
	copy(fullBoard, board)

	for i := 0; i < samples; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		d := deck.New(rng)
		d.Remove(hole...)
		d.Remove(board...)
		d.Shuffle()

		holes := make([][]deck.Card, players)
		holes[0] = hole
		for p := 1; p < players; p++ {
			if holes[p] = d.DealN(2); len(holes[p]) != 2 {
				return res, fmt.Errorf("%w: deck ran out dealing %d opponents", ErrInvalidEquityInput, opponents)
			}
		}
		for j := len(board); j < 5; j++ {
			card, ok := d.Deal()
			if !ok {
				return res, fmt.Errorf("%w: deck ran out dealing the board", ErrInvalidEquityInput)
			}
			fullBoard[j] = card
		}

		for p := range holes {
			score, err := EvaluateHand(holes[p], fullBoard)
			if err != nil {
				return res, err
			}
			scores[p] = score
		}

		sd, err := Resolve(scores, active)
		if err != nil {
			return res, err
		}

		res.Samples++
		res.Categories[scores[0].Category]++
		switch {
		case sd.IsTie() && slices.Contains(sd.Tied, 0):
			res.Ties++
		case sd.Winner == 0:
			res.Wins++
		default:
			res.Losses++
		}
	}

	return res, nil
}
