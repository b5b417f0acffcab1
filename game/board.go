package game

import (
	"fmt"
	"strings"
)

// Size is the side length of the board.
const Size = 3

// Cell is the content of a single board square.
type Cell byte

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other mark. Empty maps to itself.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Result is the outcome of a board, derived from its marks.
type Result int

const (
	InProgress Result = iota
	XWins
	OWins
	Draw
)

func (r Result) String() string {
	switch r {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Move claims an empty square for the side to move.
type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Index is the row-major position of the move's square.
func (m Move) Index() int {
	return m.Row*Size + m.Col
}

// MoveAt is the inverse of Move.Index.
func MoveAt(index int) Move {
	return Move{Row: index / Size, Col: index % Size}
}

// Board is a tic-tac-toe position in row-major order. It is a value
// type: Apply returns a new board and never mutates the receiver, so
// boards can be shared freely across goroutines and used as map keys.
type Board [Size * Size]Cell

// String renders the board compactly, rows separated by '/',
// e.g. "X.O/.XO/...". Parse accepts the same form.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < Size; col++ {
			sb.WriteString(b[row*Size+col].String())
		}
	}
	return sb.String()
}

// Parse reads a board from the compact form produced by String.
func Parse(s string) (Board, error) {
	var b Board
	rows := strings.Split(s, "/")
	if len(rows) != Size {
		return b, fmt.Errorf("parse board %q: want %d rows, got %d", s, Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("parse board %q: row %d has %d cells", s, r, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case 'X', 'x':
				b[r*Size+c] = X
			case 'O', 'o':
				b[r*Size+c] = O
			case '.':
				// Empty
			default:
				return b, fmt.Errorf("parse board %q: unknown cell %q", s, row[c])
			}
		}
	}
	return b, nil
}
