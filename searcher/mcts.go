package searcher

import (
	"context"
	"math"
	"sync"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// DefaultExploration is the UCB1 exploration constant, sqrt(2).
const DefaultExploration = math.Sqrt2

const defaultIterations = 20000

// Option configures an MCTS strategy.
type Option func(m *MCTS)

// WithIterations sets a fixed simulation budget per move.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
			m.duration = 0
		}
	}
}

// WithDuration sets a wall-clock budget per move instead of a fixed
// iteration count.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
			m.iterations = 0
		}
	}
}

// WithGoroutines sets how many goroutines run simulations in parallel.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithExploration sets the UCB1 exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithSeed fixes the rollout random seed for reproducible searches.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithCollector attaches a metrics collector to the search.
func WithCollector(c metrics.Collector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.collector = c
		}
	}
}

// MCTS is a Monte Carlo tree search strategy: UCB1 selection,
// single-child expansion, uniform random rollouts and signed backup.
// The final move is the robust child (most visits). The search tree is
// rebuilt per decision and discarded afterwards.
type MCTS struct {
	goroutines  int
	iterations  int
	duration    time.Duration
	exploration float64
	seed        uint64
	collector   metrics.Collector

	last metrics.SearchMetric
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		goroutines:  1,
		exploration: DefaultExploration,
		collector:   metrics.NewNopCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		m.iterations = defaultIterations
	}
	if m.seed == 0 {
		m.seed = uint64(time.Now().UnixNano())
	}
	return m
}

func (m *MCTS) Name() string { return "mcts" }

// ChooseMove searches from b until the configured budget or ctx runs
// out, then picks the most visited root child.
func (m *MCTS) ChooseMove(ctx context.Context, b game.Board) (game.Move, error) {
	root := newNode(nil, game.Move{}, b)
	if root.leaf() {
		return game.Move{}, ErrNoLegalMove
	}
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}

	m.collector.Start(m.goroutines)
	if m.iterations > 0 {
		m.iterate(ctx, root)
	} else {
		m.countdown(ctx, root)
	}
	// Cancellation mid-search can stop workers before any episode ran;
	// one synchronous simulation guarantees bestMove has a child.
	if root.visits == 0 {
		m.simulate(root, rand.New(rand.NewSource(m.seed)))
	}
	m.last = m.collector.Complete()

	move := root.bestMove()
	log.Debug().
		Stringer("board", b).
		Stringer("move", move).
		Int("episodes", m.last.Episodes).
		Dur("took", m.last.Duration).
		Msg("mcts move")
	return move, nil
}

// LastSearch describes the most recent ChooseMove call.
func (m *MCTS) LastSearch() metrics.SearchMetric {
	return m.last
}

// iterate spreads a fixed simulation budget over the worker pool.
func (m *MCTS) iterate(ctx context.Context, root *node) {
	tasks := make(chan struct{}, m.iterations)
	for i := 0; i < m.iterations; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(m.seed + uint64(id)))
			for range tasks {
				if ctx.Err() != nil {
					return
				}
				m.simulate(root, rng)
				m.collector.AddEpisode()
			}
		}(i)
	}
	wg.Wait()
}

// countdown runs simulations until the wall-clock budget or ctx
// expires.
func (m *MCTS) countdown(ctx context.Context, root *node) {
	ctx, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(m.seed + uint64(id)))
			for ctx.Err() == nil {
				m.simulate(root, rng)
				m.collector.AddEpisode()
			}
		}(i)
	}
	wg.Wait()
}

// simulate is one MCTS episode: descend the tree policy, roll out from
// the reached node, back the outcome up to the root.
func (m *MCTS) simulate(root *node, rng *rand.Rand) {
	n := root
	for {
		child, expanded := n.selectOrExpand(m.exploration)
		if expanded || child == n {
			n = child
			break
		}
		n = child
	}
	result := rollout(n.board, rng)
	n.backup(result)
}

// rollout plays uniformly random legal moves to the end of the game.
// On a terminal board it returns that board's result immediately.
func rollout(b game.Board, rng *rand.Rand) game.Result {
	for {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			return b.Evaluate()
		}
		next, err := b.Apply(moves[rng.Intn(len(moves))])
		if err != nil {
			panic(err)
		}
		b = next
	}
}
