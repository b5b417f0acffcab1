package searcher

import (
	"context"
	"math"

	"tictactoe/game"
)

// AlphaBeta is full-depth negamax with alpha-beta pruning. The game is
// small enough that every line is searched to a terminal board, so no
// depth cutoff or heuristic evaluation is needed. Ties between
// equally-valued moves go to the first in row-major order, which makes
// the strategy fully deterministic.
type AlphaBeta struct{}

func NewAlphaBeta() *AlphaBeta { return &AlphaBeta{} }

func (*AlphaBeta) Name() string { return "alphabeta" }

func (s *AlphaBeta) ChooseMove(_ context.Context, b game.Board) (game.Move, error) {
	root := newNode(nil, game.Move{}, b)
	if root.leaf() {
		return game.Move{}, ErrNoLegalMove
	}

	children := root.expand()
	best := children[0].move
	bestValue := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, child := range children {
		value := -s.search(child, -beta, -alpha)
		if value > bestValue {
			bestValue = value
			best = child.move
		}
		if value > alpha {
			alpha = value
		}
	}
	return best, nil
}

// search returns the value of n's board for its side to move: +1 a
// forced win, -1 a forced loss, 0 a draw.
func (s *AlphaBeta) search(n *node, alpha, beta float64) float64 {
	switch n.board.Evaluate() {
	case game.Draw:
		return 0
	case game.XWins, game.OWins:
		// The previous move completed a line, so the side to move
		// has already lost.
		return loss
	}

	best := math.Inf(-1)
	for _, child := range n.expand() {
		value := -s.search(child, -beta, -alpha)
		if value > best {
			best = value
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
