package game

import "fmt"

// winLines are the eight three-in-a-row combinations: 3 rows, 3 columns,
// 2 diagonals, in row-major square indices.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mover returns the side to move, derived from mark parity. X moves
// first, so X is to move whenever both sides have placed equally many
// marks. The mover is never stored separately, so it cannot desync
// from the board.
func (b Board) Mover() Cell {
	var xs, os int
	for _, c := range b {
		switch c {
		case X:
			xs++
		case O:
			os++
		}
	}
	if xs == os {
		return X
	}
	return O
}

// Evaluate derives the outcome of the board: a win for whichever side
// completed a line, a draw on a full board without one, otherwise
// still in progress. Pure function of the board.
func (b Board) Evaluate() Result {
	for _, line := range winLines {
		a := b[line[0]]
		if a != Empty && a == b[line[1]] && a == b[line[2]] {
			if a == X {
				return XWins
			}
			return OWins
		}
	}
	for _, c := range b {
		if c == Empty {
			return InProgress
		}
	}
	return Draw
}

// LegalMoves lists the empty squares in row-major order. It is nil iff
// the board is terminal.
func (b Board) LegalMoves() []Move {
	if b.Evaluate() != InProgress {
		return nil
	}
	moves := make([]Move, 0, len(b))
	for i, c := range b {
		if c == Empty {
			moves = append(moves, MoveAt(i))
		}
	}
	return moves
}

// Apply places the mover's mark on the square named by m and returns
// the resulting board. The mover is inferred from mark parity. It
// fails with ErrGameOver if the board is terminal and ErrIllegalMove
// if the square is off the board or occupied.
func (b Board) Apply(m Move) (Board, error) {
	if b.Evaluate() != InProgress {
		return b, fmt.Errorf("apply %s: %w", m, ErrGameOver)
	}
	if m.Row < 0 || m.Row >= Size || m.Col < 0 || m.Col >= Size {
		return b, fmt.Errorf("apply %s: off the board: %w", m, ErrIllegalMove)
	}
	if b[m.Index()] != Empty {
		return b, fmt.Errorf("apply %s: square is occupied: %w", m, ErrIllegalMove)
	}
	b[m.Index()] = b.Mover()
	return b, nil
}
