package searcher

import (
	"context"
	"errors"

	"tictactoe/game"
)

// ErrNoLegalMove reports a strategy invoked on a terminal board.
// Callers must check terminality before asking for a move.
var ErrNoLegalMove = errors.New("no legal move: board is terminal")

// Strategy picks the next move for the side to move on b. Long-running
// searches and blocking input honor ctx cancellation.
type Strategy interface {
	Name() string
	ChooseMove(ctx context.Context, b game.Board) (game.Move, error)
}

// Rewards from the perspective of the player a node's statistics
// belong to.
const (
	win  = 1.0
	loss = -win
)

// reward scores an outcome for the given mark. Draws and unfinished
// games score zero.
func reward(r game.Result, mark game.Cell) float64 {
	switch r {
	case game.XWins:
		if mark == game.X {
			return win
		}
		return loss
	case game.OWins:
		if mark == game.O {
			return win
		}
		return loss
	default:
		return 0
	}
}
