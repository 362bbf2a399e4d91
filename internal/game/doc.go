// Package game implements the table logic for a single-table Texas Hold'em
// game between one human and computer players.
//
// A Session holds the players and everything that carries over between
// rounds. Each Round owns its deck, the board, the pot and one BetState per
// seat, and moves through pre-flop, flop, turn and river with a burn card
// before each street is turned.
//
// # Basic Usage
//
//	session, _ := game.NewSession(game.SeatPlayers(5, 1000), rng)
//	engine := game.NewGameEngine(session, logger)
//	for !session.Over() {
//	    result, err := engine.PlayRound(ctx, agents)
//	    ...
//	}
//
// # Betting
//
// Each street starts with the seat (round-1) % players and a current bet of
// zero. A call pays only the difference between the current bet and what
// the player already put in on the street; a raise names the new total.
// The street ends once every live player has acted and matched the current
// bet, or only one player is left. There are no blinds, side pots or
// all-ins: a player who cannot cover the bet has to fold.
//
// # Showdown
//
// Live hands are scored with the evaluator package and the single winner
// takes the whole pot. When hands cannot be separated the first tied seat
// wins and the tie is reported on the ShowdownEvent and in the log.
package game
