package searcher

import (
	"context"
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestAlphaBeta_TerminalBoard(t *testing.T) {
	b, err := game.Parse("XXX/OO./...")
	require.NoError(t, err)

	_, err = NewAlphaBeta().ChooseMove(context.Background(), b)
	require.ErrorIs(t, err, ErrNoLegalMove)
}

func TestAlphaBeta_TakesImmediateWin(t *testing.T) {
	// X to move with two in the top row.
	b, err := game.Parse("XX./OO./...")
	require.NoError(t, err)

	move, err := NewAlphaBeta().ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, game.Move{Row: 0, Col: 2}, move)
}

func TestAlphaBeta_BlocksOpponentWin(t *testing.T) {
	// O to move; X threatens the top row and nothing else wins for O.
	b, err := game.Parse("XX./.O./...")
	require.NoError(t, err)
	require.Equal(t, game.O, b.Mover())

	move, err := NewAlphaBeta().ChooseMove(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, game.Move{Row: 0, Col: 2}, move)
}

func TestAlphaBeta_IsDeterministic(t *testing.T) {
	b, err := game.Parse("X../.O./...")
	require.NoError(t, err)

	s := NewAlphaBeta()
	first, err := s.ChooseMove(context.Background(), b)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.ChooseMove(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

// TestAlphaBeta_SelfPlayDraws pins the classic result: two optimal
// players always draw.
func TestAlphaBeta_SelfPlayDraws(t *testing.T) {
	ctx := context.Background()
	s := NewAlphaBeta()

	b := game.Board{}
	for b.Evaluate() == game.InProgress {
		move, err := s.ChooseMove(ctx, b)
		require.NoError(t, err)
		b, err = b.Apply(move)
		require.NoError(t, err)
	}
	require.Equal(t, game.Draw, b.Evaluate())
}

// TestAlphaBeta_NeverLosesToRandom plays alpha-beta in both seats
// against a seeded random opponent.
func TestAlphaBeta_NeverLosesToRandom(t *testing.T) {
	ctx := context.Background()
	ab := NewAlphaBeta()

	for seed := uint64(1); seed <= 50; seed++ {
		random := NewRandom(seed)

		// Alpha-beta as X must win or draw.
		result := playOut(t, ctx, ab, random)
		require.NotEqual(t, game.OWins, result, "alpha-beta lost as X with seed %d", seed)

		// Alpha-beta as O must win or draw.
		result = playOut(t, ctx, random, ab)
		require.NotEqual(t, game.XWins, result, "alpha-beta lost as O with seed %d", seed)
	}
}

// playOut alternates the two strategies from the empty board.
func playOut(t *testing.T, ctx context.Context, x, o Strategy) game.Result {
	t.Helper()
	b := game.Board{}
	for b.Evaluate() == game.InProgress {
		s := x
		if b.Mover() == game.O {
			s = o
		}
		move, err := s.ChooseMove(ctx, b)
		require.NoError(t, err)
		var applyErr error
		b, applyErr = b.Apply(move)
		require.NoError(t, applyErr)
	}
	return b.Evaluate()
}
