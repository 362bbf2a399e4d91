package game

import (
	"errors"
	"fmt"
)

// Legacy scalar encodings of a bet slot
const (
	SentinelFolded      = -1
	SentinelNotYetActed = -2
)

// ErrInvalidSentinel is returned for scalar bets below -2
var ErrInvalidSentinel = errors.New("invalid bet sentinel")

// BetKind distinguishes the states a player's bet slot can be in
type BetKind uint8

const (
	BetNotYetActed BetKind = iota
	BetFolded
	BetPlaced
)

func (k BetKind) String() string {
	switch k {
	case BetNotYetActed:
		return "not yet acted"
	case BetFolded:
		return "folded"
	case BetPlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// BetState is one player's standing on the current street. The zero value
// means the player has not acted yet.
type BetState struct {
	kind   BetKind
	amount int
}

// NotYetActed is the state every live player starts a street in
func NotYetActed() BetState { return BetState{kind: BetNotYetActed} }

// Folded marks a player out of the round
func Folded() BetState { return BetState{kind: BetFolded} }

// Placed records a player's total commitment on the current street
func Placed(amount int) BetState { return BetState{kind: BetPlaced, amount: amount} }

// Kind reports which variant the state holds
func (b BetState) Kind() BetKind { return b.kind }

// Amount is the chips committed this street, zero unless placed
func (b BetState) Amount() int {
	if b.kind != BetPlaced {
		return 0
	}
	return b.amount
}

// IsFolded satisfies evaluator.Participant
func (b BetState) IsFolded() bool { return b.kind == BetFolded }

// HasActed reports whether a bet has been placed this street
func (b BetState) HasActed() bool { return b.kind == BetPlaced }

// Sentinel maps the state back to the scalar form: -1 folded, -2 not yet
// acted, otherwise the amount.
func (b BetState) Sentinel() int {
	switch b.kind {
	case BetFolded:
		return SentinelFolded
	case BetPlaced:
		return b.amount
	default:
		return SentinelNotYetActed
	}
}

// BetStateFromSentinel is the inverse of Sentinel
func BetStateFromSentinel(v int) (BetState, error) {
	switch {
	case v == SentinelFolded:
		return Folded(), nil
	case v == SentinelNotYetActed:
		return NotYetActed(), nil
	case v >= 0:
		return Placed(v), nil
	default:
		return BetState{}, fmt.Errorf("%w: %d", ErrInvalidSentinel, v)
	}
}

func (b BetState) String() string {
	if b.kind == BetPlaced {
		return fmt.Sprintf("bet %d", b.amount)
	}
	return b.kind.String()
}

// resetStreet clears every non-folded bet for the next street
func resetStreet(bets []BetState) {
	for i := range bets {
		if !bets[i].IsFolded() {
			bets[i] = NotYetActed()
		}
	}
}
