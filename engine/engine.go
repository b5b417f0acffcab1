package engine

import (
	"context"
	"errors"
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

// searchMetricer is implemented by strategies that report statistics
// about their last search (MCTS).
type searchMetricer interface {
	LastSearch() metrics.SearchMetric
}

// ErrStrategyViolation reports a strategy that returned an illegal
// move. The match is aborted, never silently corrected.
var ErrStrategyViolation = errors.New("strategy returned an illegal move")

// PlyFunc observes one applied move: the mark that moved, the move,
// and the board after it. GUI collaborators hook in here.
type PlyFunc func(mover game.Cell, move game.Move, board game.Board)

// Option configures a match.
type Option func(m *Match)

// WithPlyCallback calls fn after every applied move.
func WithPlyCallback(fn PlyFunc) Option {
	return func(m *Match) {
		m.onPly = fn
	}
}

// Match drives one game between two strategies, alternating
// ChooseMove and Apply from the empty board until the board is
// terminal. Play is strictly turn-sequential; no move is ever applied
// concurrently to the same board lineage.
type Match struct {
	x           searcher.Strategy
	o           searcher.Strategy
	onPly       PlyFunc
	moves       int
	moveMetrics []metrics.MoveMetric
}

func NewMatch(x, o searcher.Strategy, options ...Option) *Match {
	m := &Match{x: x, o: o}
	for _, option := range options {
		option(m)
	}
	return m
}

// Play runs the match to completion and returns the final result. It
// fails with ErrStrategyViolation if a strategy returns a move the
// rules reject, and with ctx.Err() if the context is cancelled while a
// strategy is deciding.
func (m *Match) Play(ctx context.Context) (game.Result, error) {
	b := game.Board{}
	m.moves = 0
	m.moveMetrics = nil

	log.Debug().Str("x", m.x.Name()).Str("o", m.o.Name()).Msg("match started")

	for b.Evaluate() == game.InProgress {
		mover := b.Mover()
		strategy := m.x
		if mover == game.O {
			strategy = m.o
		}

		move, err := strategy.ChooseMove(ctx, b)
		if err != nil {
			return game.InProgress, fmt.Errorf("player %s (%s): %w", mover, strategy.Name(), err)
		}

		next, err := b.Apply(move)
		if err != nil {
			return game.InProgress, fmt.Errorf("%w: player %s (%s) played %s: %v",
				ErrStrategyViolation, mover, strategy.Name(), move, err)
		}
		b = next
		m.moves++

		if metricer, ok := strategy.(searchMetricer); ok {
			m.moveMetrics = append(m.moveMetrics, metrics.MoveMetric{
				Step:         m.moves,
				Mover:        mover,
				SearchMetric: metricer.LastSearch(),
			})
		}

		log.Debug().
			Stringer("mover", mover).
			Stringer("move", move).
			Stringer("board", b).
			Msg("move applied")

		if m.onPly != nil {
			m.onPly(mover, move, b)
		}
	}

	result := b.Evaluate()
	log.Info().
		Stringer("result", result).
		Int("moves", m.moves).
		Str("x", m.x.Name()).
		Str("o", m.o.Name()).
		Msg("match over")
	return result, nil
}

// Moves is the number of plies applied in the last Play call.
func (m *Match) Moves() int {
	return m.moves
}

// MoveMetrics reports per-move search statistics from the last Play
// call, for strategies that expose them.
func (m *Match) MoveMetrics() []metrics.MoveMetric {
	return m.moveMetrics
}

// PlayMatch is a convenience for a match with no options.
func PlayMatch(ctx context.Context, x, o searcher.Strategy) (game.Result, error) {
	return NewMatch(x, o).Play(ctx)
}
