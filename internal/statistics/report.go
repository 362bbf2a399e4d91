package statistics

import (
	"encoding/json"
	"time"

	"github.com/lox/holdem-showdown/internal/evaluator"
)

// Report is the JSON form of a simulation run
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Results  ReportResults  `json:"results"`
}

// ReportMetadata describes how the run was configured
type ReportMetadata struct {
	Seed            int64     `json:"seed"`
	Strategy        string    `json:"strategy"`
	Players         int       `json:"players"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	RoundsPerSecond float64   `json:"rounds_per_second"`
}

// ReportResults holds the aggregated counts and pot statistics
type ReportResults struct {
	Games       int `json:"games"`
	Rounds      int `json:"rounds"`
	Showdowns   int `json:"showdowns"`
	Uncontested int `json:"uncontested"`
	Ties        int `json:"ties"`

	MeanPot   float64    `json:"mean_pot"`
	MedianPot float64    `json:"median_pot"`
	StdDevPot float64    `json:"std_dev_pot"`
	CI95      [2]float64 `json:"ci_95"`
	MaxPot    int        `json:"max_pot"`

	Seats         []SeatStats    `json:"seats"`
	DecidedBy     map[string]int `json:"decided_by"`
	StreetReached map[string]int `json:"street_reached"`
	HandsShown    map[string]int `json:"hands_shown"`
	WinningHands  map[string]int `json:"winning_hands"`
}

// NewReport builds a report from aggregated statistics
func NewReport(s *Statistics, meta ReportMetadata) Report {
	low, high := s.ConfidenceInterval95()
	if meta.DurationSeconds > 0 {
		meta.RoundsPerSecond = float64(s.Rounds) / meta.DurationSeconds
	}

	tiers := make(map[string]int, len(s.Tiers))
	for tier, n := range s.Tiers {
		tiers[tier.String()] = n
	}

	return Report{
		Metadata: meta,
		Results: ReportResults{
			Games:         s.Games,
			Rounds:        s.Rounds,
			Showdowns:     s.Showdowns,
			Uncontested:   s.Uncontested,
			Ties:          s.Ties,
			MeanPot:       s.Mean(),
			MedianPot:     s.Median(),
			StdDevPot:     s.StdDev(),
			CI95:          [2]float64{low, high},
			MaxPot:        s.MaxPot,
			Seats:         s.Seats,
			DecidedBy:     tiers,
			StreetReached: s.Streets,
			HandsShown:    categoryCounts(s.Categories),
			WinningHands:  categoryCounts(s.WinningCategories),
		},
	}
}

func categoryCounts(counts [evaluator.NumCategories]int) map[string]int {
	m := map[string]int{}
	for i, n := range counts {
		if n > 0 {
			m[evaluator.Category(i).String()] = n
		}
	}
	return m
}

// MarshalIndent renders the report as indented JSON
func (r Report) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
