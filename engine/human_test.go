package engine

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/stretchr/testify/require"
)

func TestHuman_TerminalBoard(t *testing.T) {
	b, err := game.Parse("XXX/OO./...")
	require.NoError(t, err)

	h := NewHuman(func(context.Context, game.Board) (game.Move, error) {
		t.Fatal("input provider must not be called on a terminal board")
		return game.Move{}, nil
	})
	_, err = h.ChooseMove(context.Background(), b)
	require.ErrorIs(t, err, searcher.ErrNoLegalMove)
}

func TestHuman_RepromptsOnIllegalInput(t *testing.T) {
	b, err := game.Board{}.Apply(game.Move{Row: 0, Col: 0})
	require.NoError(t, err)

	attempts := []game.Move{{Row: 0, Col: 0}, {Row: 9, Col: 9}, {Row: 1, Col: 1}} // occupied, off-board, legal
	i := 0
	h := NewHuman(func(context.Context, game.Board) (game.Move, error) {
		move := attempts[i]
		i++
		return move, nil
	})

	move, err := h.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, game.Move{Row: 1, Col: 1}, move)
	require.Equal(t, 3, i)
}

func TestHuman_CancellationWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocked := NewHuman(func(ctx context.Context, _ game.Board) (game.Move, error) {
		<-ctx.Done()
		return game.Move{}, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := blocked.ChooseMove(ctx, game.Board{})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("ChooseMove did not observe cancellation")
	}
}

func TestReaderProvider(t *testing.T) {
	t.Run("parses row col lines", func(t *testing.T) {
		input := ReaderProvider(strings.NewReader("1 2\n"), io.Discard)
		move, err := input(context.Background(), game.Board{})
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 1, Col: 2}, move)
	})

	t.Run("reprompts on malformed lines", func(t *testing.T) {
		input := ReaderProvider(strings.NewReader("nope\n0 0\n"), io.Discard)
		move, err := input(context.Background(), game.Board{})
		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0}, move)
	})

	t.Run("EOF when input runs out", func(t *testing.T) {
		input := ReaderProvider(strings.NewReader(""), io.Discard)
		_, err := input(context.Background(), game.Board{})
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("cancellation wins over blocked input", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pr, _ := io.Pipe() // never written to
		input := ReaderProvider(pr, io.Discard)
		_, err := input(ctx, game.Board{})
		require.ErrorIs(t, err, context.Canceled)
	})
}
