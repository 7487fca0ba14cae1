package searcher

import (
	"errors"
	"fmt"
	"time"
	"uct/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrNoLegalMove is returned when a search cannot recommend any move, either
// because the root state is terminal or because no iteration was allowed.
var ErrNoLegalMove = errors.New("no legal move available")

type Option func(m *MCTS)

// MCTS is a single-threaded UCT searcher. The tree is rebuilt from scratch on
// every Search call; a searcher must not be shared between goroutines.
type MCTS struct {
	exploration float64
	duration    time.Duration
	policy      FinalPolicy
	rand        *rand.Rand
	metrics     MetricsCollector
	root        *Node
	metric      SearchMetric
}

// WithExploration sets the UCB1 exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithDuration bounds each search by wall-clock time on top of the iteration
// budget. The deadline is checked before every iteration but the first.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithFinalPolicy(policy FinalPolicy) Option {
	return func(m *MCTS) {
		m.policy = policy
	}
}

// WithRand makes expansion and rollouts draw from r.
func WithRand(r *rand.Rand) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rand = r
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: Exploration,
		policy:      MostVisits,
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search runs a one-off search with a fresh searcher built from options.
func Search(state game.State, iterations int, options ...Option) (game.Move, error) {
	return NewMCTS(options...).Search(state, iterations)
}

// Search runs iterations rounds of select, expand, simulate and backpropagate
// from state and returns the recommended move. state itself is never mutated.
func (m *MCTS) Search(state game.State, iterations int) (game.Move, error) {
	m.root = NewNode(state, nil, nil)
	m.metric = SearchMetric{}

	if iterations <= 0 {
		return nil, fmt.Errorf("%w: %d iterations", ErrNoLegalMove, iterations)
	}
	if m.root.IsTerminal() {
		return nil, fmt.Errorf("%w: root state is terminal", ErrNoLegalMove)
	}

	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	m.metrics.Start()
	for i := 0; i < iterations; i++ {
		if i > 0 && !deadline.IsZero() && time.Now().After(deadline) {
			m.metrics.DeadlineHit()
			break
		}
		m.iterate(state)
	}
	m.metric = m.metrics.Complete(m.root)

	best := m.root.bestChild(m.policy)
	log.Debug().Msgf("search done after %d iterations: %v (%d visits, win rate %.3f, policy %s)",
		m.root.visits, best.move, best.visits, best.WinRate(), m.policy)
	return best.move, nil
}

// Root is the tree built by the last Search, kept for inspection only.
func (m *MCTS) Root() *Node {
	return m.root
}

// Metric is the metric of the last Search; zero unless WithMetrics was used.
func (m *MCTS) Metric() SearchMetric {
	return m.metric
}

func (m *MCTS) iterate(rootState game.State) {
	node := m.root
	state := rootState.Clone()
	depth := 0

	// Select
	for node.IsFullyExpanded() {
		node = node.SelectChild(m.exploration)
		state.ApplyMove(node.move)
		depth++
	}

	// Expand
	if len(node.untried) > 0 {
		move := node.untried[m.rand.Intn(len(node.untried))]
		state.ApplyMove(move)
		node = node.AddChild(move, state)
		depth++
		m.metrics.AddExpansion()
	}

	m.rollout(state)
	backup(node, state)
	m.metrics.AddIteration(depth)
}

// rollout plays uniformly random moves until the game is over.
func (m *MCTS) rollout(state game.State) {
	moves := state.LegalMoves()
	for len(moves) > 0 {
		move := moves[m.rand.Intn(len(moves))] // Random rollout policy
		state.ApplyMove(move)
		m.metrics.AddRolloutPly()
		moves = state.LegalMoves()
	}
}

// backup credits the terminal outcome to every node from node up to the root,
// each from the viewpoint of its own player.
func backup(node *Node, terminal game.State) {
	for node != nil {
		node.Update(terminal.Result(node.player))
		node = node.parent
	}
}
