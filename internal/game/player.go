package game

import (
	"fmt"

	"github.com/lox/holdem-showdown/internal/deck"
)

// PlayerType distinguishes the human seat from computer players
type PlayerType int

const (
	Human PlayerType = iota
	AI
)

func (t PlayerType) String() string {
	if t == Human {
		return "human"
	}
	return "ai"
}

// Player represents a seat at the table and persists across rounds
type Player struct {
	Seat      int
	Name      string
	Type      PlayerType
	Chips     int
	HoleCards []deck.Card
}

// NewPlayer creates a new player
func NewPlayer(seat int, name string, playerType PlayerType, chips int) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Type:  playerType,
		Chips: chips,
	}
}

// SeatPlayers builds a table with the human in seat 0 and AI players after
func SeatPlayers(count, chips int) []*Player {
	players := make([]*Player, count)
	for i := range players {
		if i == 0 {
			players[i] = NewPlayer(i, "You", Human, chips)
			continue
		}
		players[i] = NewPlayer(i, fmt.Sprintf("Player %d", i+1), AI, chips)
	}
	return players
}

// CanPlay reports whether the player has chips to sit in a round
func (p *Player) CanPlay() bool {
	return p.Chips > 0
}

// IsHuman reports whether the seat belongs to the human
func (p *Player) IsHuman() bool {
	return p.Type == Human
}

// ClearHand resets the player's hole cards for a new round
func (p *Player) ClearHand() {
	p.HoleCards = nil
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d chips)", p.Name, p.Chips)
}
