package engine

import (
	"context"
	"testing"

	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/stretchr/testify/require"
)

// scriptedStrategy plays a fixed move sequence, legal or not.
type scriptedStrategy struct {
	name  string
	moves []game.Move
	next  int
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) ChooseMove(_ context.Context, _ game.Board) (game.Move, error) {
	move := s.moves[s.next]
	s.next++
	return move, nil
}

func TestMatch_OptimalSelfPlayDrawsInNineMoves(t *testing.T) {
	match := NewMatch(searcher.NewAlphaBeta(), searcher.NewAlphaBeta())

	result, err := match.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, game.Draw, result)
	require.Equal(t, 9, match.Moves())
}

func TestMatch_ScriptedWin(t *testing.T) {
	x := &scriptedStrategy{name: "x", moves: []game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}}
	o := &scriptedStrategy{name: "o", moves: []game.Move{{Row: 1, Col: 1}, {Row: 2, Col: 2}}}

	match := NewMatch(x, o)
	result, err := match.Play(context.Background())
	require.NoError(t, err)
	require.Equal(t, game.XWins, result)
	require.Equal(t, 5, match.Moves())
}

func TestMatch_StrategyViolationAbortsAndNamesOffender(t *testing.T) {
	x := &scriptedStrategy{name: "honest", moves: []game.Move{{Row: 0, Col: 0}}}
	o := &scriptedStrategy{name: "cheater", moves: []game.Move{{Row: 0, Col: 0}}} // occupied

	_, err := NewMatch(x, o).Play(context.Background())
	require.ErrorIs(t, err, ErrStrategyViolation)
	require.Contains(t, err.Error(), "cheater")
}

func TestMatch_PlyCallbackSeesEveryMove(t *testing.T) {
	var plies []game.Move
	match := NewMatch(
		searcher.NewAlphaBeta(),
		searcher.NewAlphaBeta(),
		WithPlyCallback(func(_ game.Cell, move game.Move, _ game.Board) {
			plies = append(plies, move)
		}),
	)

	_, err := match.Play(context.Background())
	require.NoError(t, err)
	require.Len(t, plies, match.Moves())
}

func TestMatch_RandomVsRandomTerminates(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		result, err := PlayMatch(context.Background(), searcher.NewRandom(seed), searcher.NewRandom(seed+100))
		require.NoError(t, err)
		require.NotEqual(t, game.InProgress, result)
	}
}
