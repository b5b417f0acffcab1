package searcher

import (
	"math"
	"sync"

	"tictactoe/game"
)

// node is one position in the search tree. A node owns its children;
// the parent pointer is a non-owning back-reference used only while
// backing up simulation results. moves holds the legal moves of the
// board in row-major order and children grows lazily, index-aligned
// with moves, so expansion never duplicates a child.
//
// Statistics (visits, rewards) are guarded by the node's own mutex so
// that parallel searches can update them without a global lock.
// Rewards are from the perspective of the player who moved into this
// node.
type node struct {
	mu       sync.Mutex
	parent   *node
	move     game.Move
	board    game.Board
	mover    game.Cell
	moves    []game.Move
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, move game.Move, board game.Board) *node {
	return &node{
		parent: parent,
		move:   move,
		board:  board,
		mover:  board.Mover().Opponent(),
		moves:  board.LegalMoves(),
	}
}

// leaf reports whether the node's board is terminal, whether or not
// children have been computed.
func (n *node) leaf() bool {
	return len(n.moves) == 0
}

// expand fills in all children. It is idempotent: already-built
// children are returned as-is.
func (n *node) expand() []*node {
	n.mu.Lock()
	defer n.mu.Unlock()
	for len(n.children) < len(n.moves) {
		n.addChildLocked()
	}
	return n.children
}

// addChildLocked builds the child for the first untried move. The
// caller must hold n.mu.
func (n *node) addChildLocked() *node {
	move := n.moves[len(n.children)]
	board, err := n.board.Apply(move)
	if err != nil {
		// moves came from LegalMoves on the same board
		panic(err)
	}
	child := newNode(n, move, board)
	n.children = append(n.children, child)
	return child
}

// selectOrExpand is one step of the MCTS tree policy: on a terminal
// node it returns the node itself; on a node with untried moves it
// adds and returns one new child; on a fully expanded node it returns
// the UCB1-best child. expanded is true only in the second case, which
// ends the selection phase.
func (n *node) selectOrExpand(exploration float64) (child *node, expanded bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.moves) == 0 {
		return n, false
	}
	if len(n.children) < len(n.moves) {
		return n.addChildLocked(), true
	}
	return n.children[n.pickChildLocked(exploration)], false
}

// pickChildLocked picks the child maximizing UCB1. The caller must
// hold n.mu. Child statistics are read under each child's own lock;
// slightly stale values are acceptable for selection.
func (n *node) pickChildLocked(exploration float64) int {
	normalizer := exploration * exploration * math.Log(float64(n.visits))

	best := 0
	bestScore := math.Inf(-1)
	for i, child := range n.children {
		score := child.score(normalizer)
		if math.IsInf(score, 1) {
			return i
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func (n *node) score(normalizer float64) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ucb1(n.rewards, n.visits, normalizer)
}

// ucb1 balances exploitation (mean reward) against exploration.
// Unvisited nodes score +Inf so they are tried first.
func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// backup propagates a simulation outcome from n up to the root. The
// reward sign alternates naturally because each node scores the
// outcome for its own mover.
func (n *node) backup(result game.Result) {
	for node := n; node != nil; node = node.parent {
		node.mu.Lock()
		node.visits++
		node.rewards += reward(result, node.mover)
		node.mu.Unlock()
	}
}

// bestMove applies the robust-child criterion: most visits wins,
// higher accumulated reward breaks ties, earlier row-major move breaks
// the rest.
func (n *node) bestMove() game.Move {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.children) == 0 {
		panic("bestMove on a node with no children")
	}

	best := 0
	bestVisits, bestRewards := -1, math.Inf(-1)
	for i, child := range n.children {
		child.mu.Lock()
		visits, rewards := child.visits, child.rewards
		child.mu.Unlock()
		if visits > bestVisits || (visits == bestVisits && rewards > bestRewards) {
			best = i
			bestVisits, bestRewards = visits, rewards
		}
	}
	return n.moves[best]
}
