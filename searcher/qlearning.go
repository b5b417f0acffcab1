package searcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// QOption configures a QLearning strategy.
type QOption func(q *QLearning)

// WithEpsilon sets the exploration rate. A positive epsilon makes
// ChooseMove epsilon-greedy (training); zero makes it a deterministic
// argmax (evaluation). Default is zero.
func WithEpsilon(epsilon float64) QOption {
	return func(q *QLearning) {
		if epsilon >= 0 && epsilon <= 1 {
			q.epsilon = epsilon
		}
	}
}

// WithLearningRate sets the update step size.
func WithLearningRate(alpha float64) QOption {
	return func(q *QLearning) {
		if alpha > 0 {
			q.alpha = alpha
		}
	}
}

// WithDiscount sets the future-reward discount factor.
func WithDiscount(gamma float64) QOption {
	return func(q *QLearning) {
		if gamma >= 0 && gamma <= 1 {
			q.gamma = gamma
		}
	}
}

// WithQSeed fixes the exploration random seed.
func WithQSeed(seed uint64) QOption {
	return func(q *QLearning) {
		q.seed = seed
	}
}

// QLearning picks moves by a learned per-board action-value table. The
// table is keyed by the raw board (no symmetry reduction) and indexed
// by the move's row-major square. The strategy owns its table across
// matches; an external training driver feeds it through Update and
// resets it between independent experiments with Reset.
//
// A QLearning instance is not safe for concurrent use: decisions and
// updates belong to a single sequential training or evaluation loop.
type QLearning struct {
	table   map[game.Board][9]float64
	alpha   float64
	gamma   float64
	epsilon float64
	seed    uint64
	rng     *rand.Rand
}

func NewQLearning(options ...QOption) *QLearning {
	q := &QLearning{
		table: make(map[game.Board][9]float64),
		alpha: 0.1,
		gamma: 0.9,
	}
	for _, option := range options {
		option(q)
	}
	if q.seed == 0 {
		q.seed = uint64(time.Now().UnixNano())
	}
	q.rng = rand.New(rand.NewSource(q.seed))
	return q
}

func (*QLearning) Name() string { return "qlearning" }

func (q *QLearning) ChooseMove(_ context.Context, b game.Board) (game.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMove
	}

	if q.epsilon > 0 && q.rng.Float64() < q.epsilon {
		return moves[q.rng.Intn(len(moves))], nil
	}

	values := q.table[b]
	best := moves[0]
	bestValue := values[best.Index()]
	for _, m := range moves[1:] {
		if v := values[m.Index()]; v > bestValue {
			best = m
			bestValue = v
		}
	}
	return best, nil
}

// Update applies one Q-learning step for taking m on prev, observing
// reward and landing on next: Q(s,a) += alpha*(r + gamma*max_a' Q(s',a') - Q(s,a)).
// On terminal next boards the future term is zero.
func (q *QLearning) Update(prev game.Board, m game.Move, next game.Board, reward float64) {
	var future float64
	if moves := next.LegalMoves(); len(moves) > 0 {
		nextValues := q.table[next]
		future = nextValues[moves[0].Index()]
		for _, nm := range moves[1:] {
			if v := nextValues[nm.Index()]; v > future {
				future = v
			}
		}
	}

	values := q.table[prev]
	i := m.Index()
	values[i] += q.alpha * (reward + q.gamma*future - values[i])
	q.table[prev] = values
}

// Reset drops the learned table, for a fresh experiment.
func (q *QLearning) Reset() {
	q.table = make(map[game.Board][9]float64)
}

// Snapshot serializes the value table to an opaque blob the training
// collaborator can store however it likes.
func (q *QLearning) Snapshot() ([]byte, error) {
	out := make(map[string][9]float64, len(q.table))
	for b, values := range q.table {
		out[b.String()] = values
	}
	return json.Marshal(out)
}

// Restore replaces the value table with a snapshot.
func (q *QLearning) Restore(data []byte) error {
	in := make(map[string][9]float64)
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("restore value table: %w", err)
	}
	table := make(map[game.Board][9]float64, len(in))
	for s, values := range in {
		b, err := game.Parse(s)
		if err != nil {
			return fmt.Errorf("restore value table: %w", err)
		}
		table[b] = values
	}
	q.table = table
	return nil
}
