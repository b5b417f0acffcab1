package game

import "errors"

var (
	// ErrIllegalMove reports a move onto an occupied or off-board square.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver reports a move applied to a terminal board.
	ErrGameOver = errors.New("game is already over")
)
