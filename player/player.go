package player

import (
	"fmt"
	"time"
	"uct/game"
	"uct/searcher"

	"golang.org/x/exp/rand"
)

// Player picks moves for one side of a game.
type Player interface {
	Name() string
	// FindMove returns the move to play from state. state must not be mutated.
	FindMove(state game.State) (game.Move, error)
}

// MetricPlayer is implemented by players that can report on their last search.
type MetricPlayer interface {
	Player
	LastMetric() searcher.SearchMetric
}

// UCT searches every position with a fixed iteration budget.
type UCT struct {
	name       string
	iterations int
	mcts       *searcher.MCTS
}

// NewUCT creates a UCT player. Metrics are always collected.
func NewUCT(name string, iterations int, options ...searcher.Option) *UCT {
	options = append(options, searcher.WithMetrics())
	return &UCT{
		name:       name,
		iterations: iterations,
		mcts:       searcher.NewMCTS(options...),
	}
}

func (u *UCT) Name() string {
	return u.name
}

func (u *UCT) FindMove(state game.State) (game.Move, error) {
	move, err := u.mcts.Search(state, u.iterations)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u.name, err)
	}
	return move, nil
}

func (u *UCT) LastMetric() searcher.SearchMetric {
	return u.mcts.Metric()
}

// Tree is the search tree behind the last move, for inspection.
func (u *UCT) Tree() *searcher.Node {
	return u.mcts.Root()
}

// Random plays a uniformly random legal move.
type Random struct {
	name string
	r    *rand.Rand
}

func NewRandom(name string, seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{name: name, r: rand.New(rand.NewSource(seed))}
}

func (p *Random) Name() string {
	return p.name
}

func (p *Random) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, fmt.Errorf("%s: %w", p.name, searcher.ErrNoLegalMove)
	}
	return moves[p.r.Intn(len(moves))], nil
}

// New builds a player from its kind, "uct" or "random".
func New(kind, name string, iterations int, seed uint64, options ...searcher.Option) (Player, error) {
	switch kind {
	case "uct":
		if seed != 0 {
			options = append([]searcher.Option{searcher.WithSeed(seed)}, options...)
		}
		return NewUCT(name, iterations, options...), nil
	case "random":
		return NewRandom(name, seed), nil
	default:
		return nil, fmt.Errorf("unknown player kind %q", kind)
	}
}
