package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdem-showdown/internal/evaluator"
)

// RoundResult is the outcome of one simulated round
type RoundResult struct {
	Game          int   // game index within the run
	Round         int   // round number within the game
	Seed          int64 // game seed, for replay
	Winner        int   // seat that took the pot
	Pot           int
	Showdown      bool                 // hands were compared
	Tier          evaluator.Tier       // comparison that decided the pot
	Tied          bool                 // unresolved tie, first tied seat took the pot
	Categories    []evaluator.Category // every hand shown down
	WinningHand   evaluator.Category
	StreetReached string // furthest street dealt
}

// SeatStats tracks results for one seat across every game
type SeatStats struct {
	Wins     int `json:"wins"`
	ChipsWon int `json:"chips_won"`
}

// Statistics aggregates simulated rounds. Pot sizes feed the summary
// statistics; everything else is a count.
type Statistics struct {
	Games  int
	Rounds int
	SumPot float64
	// Sum of squares for variance calculation
	SumPot2 float64
	Values  []float64

	Showdowns   int
	Uncontested int
	Ties        int
	MaxPot      int

	Seats             []SeatStats
	Tiers             map[evaluator.Tier]int
	Streets           map[string]int
	Categories        [evaluator.NumCategories]int // every hand shown down
	WinningCategories [evaluator.NumCategories]int // the winning hand at each showdown
}

// Add incorporates a round into the statistics
func (s *Statistics) Add(result RoundResult) {
	pot := float64(result.Pot)
	s.Rounds++
	s.SumPot += pot
	s.SumPot2 += pot * pot
	s.Values = append(s.Values, pot)
	s.MaxPot = max(s.MaxPot, result.Pot)

	if result.Winner >= 0 {
		for len(s.Seats) <= result.Winner {
			s.Seats = append(s.Seats, SeatStats{})
		}
		s.Seats[result.Winner].Wins++
		s.Seats[result.Winner].ChipsWon += result.Pot
	}

	if s.Tiers == nil {
		s.Tiers = map[evaluator.Tier]int{}
		s.Streets = map[string]int{}
	}
	s.Tiers[result.Tier]++
	s.Streets[result.StreetReached]++

	if !result.Showdown {
		s.Uncontested++
		return
	}
	s.Showdowns++
	if result.Tied {
		s.Ties++
	}
	for _, c := range result.Categories {
		if c.Valid() {
			s.Categories[c]++
		}
	}
	if result.WinningHand.Valid() {
		s.WinningCategories[result.WinningHand]++
	}
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(o *Statistics) {
	s.Games += o.Games
	s.Rounds += o.Rounds
	s.SumPot += o.SumPot
	s.SumPot2 += o.SumPot2
	s.Values = append(s.Values, o.Values...)
	s.Showdowns += o.Showdowns
	s.Uncontested += o.Uncontested
	s.Ties += o.Ties
	s.MaxPot = max(s.MaxPot, o.MaxPot)

	for len(s.Seats) < len(o.Seats) {
		s.Seats = append(s.Seats, SeatStats{})
	}
	for i, seat := range o.Seats {
		s.Seats[i].Wins += seat.Wins
		s.Seats[i].ChipsWon += seat.ChipsWon
	}

	if s.Tiers == nil {
		s.Tiers = map[evaluator.Tier]int{}
		s.Streets = map[string]int{}
	}
	for k, v := range o.Tiers {
		s.Tiers[k] += v
	}
	for k, v := range o.Streets {
		s.Streets[k] += v
	}
	for i := range s.Categories {
		s.Categories[i] += o.Categories[i]
		s.WinningCategories[i] += o.WinningCategories[i]
	}
}

// Mean returns the average pot size
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumPot / float64(s.Rounds)
}

// Variance returns the sample variance of pot sizes
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPot2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of pot sizes
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean pot
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median pot size
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the pot size at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of rounds a seat won
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Rounds == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Rounds)
}

// CategoryShare returns how often a category appeared among hands shown down
func (s *Statistics) CategoryShare(c evaluator.Category) float64 {
	total := 0
	for _, n := range s.Categories {
		total += n
	}
	if total == 0 || !c.Valid() {
		return 0
	}
	return float64(s.Categories[c]) / float64(total)
}

// Validate checks the counts agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.Showdowns+s.Uncontested != s.Rounds {
		return fmt.Errorf("showdowns (%d) plus uncontested (%d) does not match rounds (%d)", s.Showdowns, s.Uncontested, s.Rounds)
	}
	if s.Ties > s.Showdowns {
		return fmt.Errorf("ties (%d) exceed showdowns (%d)", s.Ties, s.Showdowns)
	}

	wins := 0
	for _, seat := range s.Seats {
		wins += seat.Wins
	}
	if wins != s.Rounds {
		return fmt.Errorf("seat wins total (%d) does not match rounds (%d)", wins, s.Rounds)
	}

	winning := 0
	for _, n := range s.WinningCategories {
		winning += n
	}
	if winning != s.Showdowns {
		return fmt.Errorf("winning hands (%d) does not match showdowns (%d)", winning, s.Showdowns)
	}
	return nil
}
