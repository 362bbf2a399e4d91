package game

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerFolded      = errors.New("player has folded")
	ErrInsufficientChips = errors.New("not enough chips")
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidAmount     = errors.New("invalid bet amount")
)

// Committed is what seat has already put in on this street
func (r *Round) Committed(seat int) int {
	return r.Bets[seat].Amount()
}

// ToCall is the number of chips seat needs to match the current bet
func (r *Round) ToCall(seat int) int {
	owed := r.CurrentBet - r.Committed(seat)
	if owed < 0 {
		return 0
	}
	return owed
}

// ValidActions returns valid actions for a player. Folding is always
// allowed; a player who cannot cover the current bet may only fold.
func (r *Round) ValidActions(seat int) []ValidAction {
	if r.Bets[seat].IsFolded() || r.complete {
		return nil
	}

	p := r.Players[seat]
	owed := r.ToCall(seat)
	valid := []ValidAction{{Action: Fold}}

	switch {
	case owed == 0:
		valid = append(valid, ValidAction{Action: Check})
	case owed <= p.Chips:
		valid = append(valid, ValidAction{Action: Call, MinAmount: owed, MaxAmount: owed})
	}

	maxTotal := r.Committed(seat) + p.Chips
	if maxTotal > r.CurrentBet {
		valid = append(valid, ValidAction{
			Action:    Raise,
			MinAmount: r.CurrentBet + 1,
			MaxAmount: maxTotal,
		})
	}

	return valid
}

// Apply executes a decision for seat and returns the decision as applied.
// Check and call both match the current bet, paying only the difference
// from the player's street commitment. A raise to exactly the current bet
// is a call.
func (r *Round) Apply(seat int, d Decision) (Decision, error) {
	if r.complete {
		return d, ErrRoundComplete
	}
	if seat < 0 || seat >= len(r.Players) {
		return d, fmt.Errorf("%w: no seat %d", ErrInvalidAction, seat)
	}
	if r.Bets[seat].IsFolded() {
		return d, fmt.Errorf("%s: %w", r.Players[seat].Name, ErrPlayerFolded)
	}

	p := r.Players[seat]
	switch d.Action {
	case Fold:
		r.Bets[seat] = Folded()
		d.Amount = 0

	case Check, Call:
		owed := r.ToCall(seat)
		if owed > p.Chips {
			return d, fmt.Errorf("%s needs %d to call, has %d: %w", p.Name, owed, p.Chips, ErrInsufficientChips)
		}
		r.pay(seat, owed)
		r.Bets[seat] = Placed(r.CurrentBet)
		d.Amount = r.CurrentBet
		if owed > 0 {
			d.Action = Call
		} else {
			d.Action = Check
		}

	case Raise:
		if d.Amount < r.CurrentBet {
			return d, fmt.Errorf("%w: must bet at least the current bet %d, got %d", ErrInvalidAmount, r.CurrentBet, d.Amount)
		}
		if d.Amount == r.CurrentBet {
			return r.Apply(seat, Decision{Action: Call, Reasoning: d.Reasoning})
		}
		owed := d.Amount - r.Committed(seat)
		if owed > p.Chips {
			return d, fmt.Errorf("%s cannot bet %d with %d chips: %w", p.Name, d.Amount, p.Chips, ErrInsufficientChips)
		}
		r.pay(seat, owed)
		r.CurrentBet = d.Amount
		r.Bets[seat] = Placed(d.Amount)

	default:
		return d, fmt.Errorf("%w: %s", ErrInvalidAction, d.Action)
	}

	r.visited[seat] = true
	return d, nil
}

func (r *Round) pay(seat, amount int) {
	r.Players[seat].Chips -= amount
	r.Pot += amount
}

// MarkVisited records that seat has had its turn on this street
func (r *Round) MarkVisited(seat int) {
	r.visited[seat] = true
}

// StreetComplete reports whether betting on the current street is over:
// every live player has acted and matched the current bet, or only one
// player is left.
func (r *Round) StreetComplete() bool {
	if r.ActiveCount() <= 1 {
		return true
	}
	for i, b := range r.Bets {
		if b.IsFolded() {
			continue
		}
		if !r.visited[i] || !b.HasActed() || b.Amount() != r.CurrentBet {
			return false
		}
	}
	return true
}
