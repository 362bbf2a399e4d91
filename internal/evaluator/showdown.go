package evaluator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActivePlayers is returned when every player has folded
	ErrNoActivePlayers = errors.New("no active players at showdown")
	// ErrLengthMismatch is returned when scores and players are not paired up
	ErrLengthMismatch = errors.New("scores and bets have different lengths")
)

// Participant is anything that can say whether a seat has folded. The game
// package's bet state satisfies it.
type Participant interface {
	IsFolded() bool
}

// RawBet is the scalar bet encoding: -1 folded, -2 not yet acted,
// otherwise the amount wagered.
type RawBet int

// IsFolded reports whether the raw bet marks a fold
func (b RawBet) IsFolded() bool { return b == -1 }

// RawBets converts a scalar bet vector for use with Resolve
func RawBets(bets ...int) []RawBet {
	out := make([]RawBet, len(bets))
	for i, b := range bets {
		out[i] = RawBet(b)
	}
	return out
}

// Tier identifies which comparison decided a showdown
type Tier int

const (
	// TierUncontested means only one player was left in the hand
	TierUncontested Tier = iota
	TierCategory
	TierRankScore
	TierSuitScore
)

func (t Tier) String() string {
	switch t {
	case TierUncontested:
		return "uncontested"
	case TierCategory:
		return "hand category"
	case TierRankScore:
		return "rank score"
	case TierSuitScore:
		return "suit score"
	default:
		return "unknown"
	}
}

// Showdown is the outcome of Resolve.
//
// When every tier is exhausted and several players are still level, Tied
// lists all of them and Winner is the first of those indices. The pot is
// not split.
type Showdown struct {
	Winner     int
	Tier       Tier
	Tied       []int
	Contenders []int
}

// IsTie reports whether the winner was chosen from an unresolved tie
func (s Showdown) IsTie() bool {
	return len(s.Tied) > 1
}

func (s Showdown) String() string {
	if s.IsTie() {
		return fmt.Sprintf("tie between %v, player %d takes the pot", s.Tied, s.Winner)
	}
	return fmt.Sprintf("player %d wins on %s", s.Winner, s.Tier)
}

// Resolve picks the winning index among players that have not folded.
// Contenders are narrowed by hand category, then rank score, then suit
// score; the first tier that leaves a single player decides.
func Resolve[P Participant](scores []HandScore, players []P) (Showdown, error) {
	if len(scores) != len(players) {
		return Showdown{}, fmt.Errorf("%w: %d scores, %d bets", ErrLengthMismatch, len(scores), len(players))
	}

	var active []int
	for i, p := range players {
		if !p.IsFolded() {
			active = append(active, i)
		}
	}

	switch len(active) {
	case 0:
		return Showdown{}, ErrNoActivePlayers
	case 1:
		return Showdown{Winner: active[0], Tier: TierUncontested, Contenders: active}, nil
	}

	tiers := []struct {
		tier  Tier
		score func(HandScore) int
	}{
		{TierCategory, func(h HandScore) int { return int(h.Category) }},
		{TierRankScore, func(h HandScore) int { return h.RankScore }},
		{TierSuitScore, func(h HandScore) int { return h.SuitScore }},
	}

	remaining := active
	for _, t := range tiers {
		remaining = best(remaining, scores, t.score)
		if len(remaining) == 1 {
			return Showdown{Winner: remaining[0], Tier: t.tier, Contenders: active}, nil
		}
	}

	return Showdown{
		Winner:     remaining[0],
		Tier:       TierSuitScore,
		Tied:       remaining,
		Contenders: active,
	}, nil
}

// best keeps the indices whose score equals the maximum, preserving order
func best(indices []int, scores []HandScore, score func(HandScore) int) []int {
	top := score(scores[indices[0]])
	for _, i := range indices[1:] {
		if s := score(scores[i]); s > top {
			top = s
		}
	}

	kept := make([]int, 0, len(indices))
	for _, i := range indices {
		if score(scores[i]) == top {
			kept = append(kept, i)
		}
	}
	return kept
}
