package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"tictactoe/game"
	"tictactoe/searcher"
)

// InputProvider supplies the next move for the side to move on b. It
// blocks until input arrives or ctx is cancelled; on cancellation it
// returns ctx.Err().
type InputProvider func(ctx context.Context, b game.Board) (game.Move, error)

// Human adapts external input to the Strategy interface, so a person
// can sit in either seat of a match. Illegal input is reprompted
// rather than surfaced as an engine error; only cancellation and input
// exhaustion end the turn without a move.
type Human struct {
	input InputProvider
}

func NewHuman(input InputProvider) *Human {
	return &Human{input: input}
}

func (*Human) Name() string { return "human" }

func (h *Human) ChooseMove(ctx context.Context, b game.Board) (game.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, searcher.ErrNoLegalMove
	}

	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		move, err := h.input(ctx, b)
		if err != nil {
			return game.Move{}, err
		}
		for _, legal := range moves {
			if move == legal {
				return move, nil
			}
		}
		// Illegal human input is not a contract violation; ask again.
	}
}

// ReaderProvider reads moves as "row col" lines from r, prompting on
// w. The read happens on its own goroutine so cancellation is honored
// even while blocked on input.
func ReaderProvider(r io.Reader, w io.Writer) InputProvider {
	lines := make(chan string)
	scanner := bufio.NewScanner(r)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return func(ctx context.Context, b game.Board) (game.Move, error) {
		for {
			fmt.Fprintf(w, "%s to move (row col): ", b.Mover())
			select {
			case <-ctx.Done():
				return game.Move{}, ctx.Err()
			case line, ok := <-lines:
				if !ok {
					return game.Move{}, io.EOF
				}
				var move game.Move
				if _, err := fmt.Sscanf(line, "%d %d", &move.Row, &move.Col); err != nil {
					fmt.Fprintln(w, "could not read that, use: row col (0-2)")
					continue
				}
				return move, nil
			}
		}
	}
}
