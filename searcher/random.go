package searcher

import (
	"context"
	"time"

	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move. It is the baseline
// opponent for benchmarks.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a random strategy. A zero seed picks one from the
// clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string { return "random" }

func (r *Random) ChooseMove(_ context.Context, b game.Board) (game.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMove
	}
	return moves[r.rng.Intn(len(moves))], nil
}
