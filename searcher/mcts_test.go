package searcher

import (
	"testing"
	"time"
	"uct/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests the sequential UCT driver:
- edge cases: terminal root, zero iterations -> ErrNoLegalMove
- visit accounting: root visits == iterations
- value bound: every node's win rate in [0, 1]
- determinism: same seed -> same tree and same move
- forced win: immediately winning move is recommended
- symmetry: equal moves converge to the same win rate
*/

func TestSearchWithoutLegalMove(t *testing.T) {
	t.Run("terminal root", func(t *testing.T) {
		state := game.NewNim(0)

		move, err := Search(state, 100, WithSeed(1))

		require.ErrorIs(t, err, ErrNoLegalMove)
		require.Nil(t, move)
	})

	t.Run("zero iterations", func(t *testing.T) {
		state := game.NewNim(5)

		move, err := Search(state, 0, WithSeed(1))

		require.ErrorIs(t, err, ErrNoLegalMove)
		require.Nil(t, move)
	})
}

func TestSearchVisitAccounting(t *testing.T) {
	const iterations = 1000
	m := NewMCTS(WithSeed(3), WithMetrics())

	_, err := m.Search(game.NewConnect4(game.DefaultWidth, game.DefaultHeight), iterations)

	require.NoError(t, err)
	require.Equal(t, iterations, m.Root().Visits(), "Every iteration should pass through the root once")

	childVisits := 0
	for _, child := range m.Root().Children() {
		childVisits += child.Visits()
	}
	require.Equal(t, iterations, childVisits, "Every iteration should pass through exactly one root child")

	metric := m.Metric()
	require.Equal(t, iterations, metric.Iterations)
	require.Equal(t, m.Root().Size()-1, metric.Expansions, "Every node but the root comes from an expansion")
	require.Equal(t, m.Root().Size(), metric.TreeSize)
	require.Positive(t, metric.RolloutPlies)
	require.Positive(t, metric.MaxDepth)
	require.False(t, metric.DeadlineHit)
}

func TestSearchValueBound(t *testing.T) {
	m := NewMCTS(WithSeed(5))

	_, err := m.Search(game.NewConnect4(game.DefaultWidth, game.DefaultHeight), 2000)
	require.NoError(t, err)

	var walk func(node *Node)
	walk = func(node *Node) {
		require.Positive(t, node.Visits(), "Every node in the tree should have been simulated")
		require.GreaterOrEqual(t, node.WinRate(), 0.0)
		require.LessOrEqual(t, node.WinRate(), 1.0)
		for _, child := range node.Children() {
			require.Same(t, node, child.Parent())
			walk(child)
		}
	}
	walk(m.Root())
}

func TestSearchDeterminism(t *testing.T) {
	state := game.NewConnect4(game.DefaultWidth, game.DefaultHeight)
	first := NewMCTS(WithSeed(42))
	second := NewMCTS(WithRand(rand.New(rand.NewSource(42))))

	move1, err1 := first.Search(state, 500)
	move2, err2 := second.Search(state, 500)

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, move1, move2, "Same seed should recommend the same move")
	require.Equal(t, first.Root().TreeString(0), second.Root().TreeString(0), "Same seed should build the same tree")
}

func TestSearchDoesNotMutateRoot(t *testing.T) {
	state := game.NewConnect4(game.DefaultWidth, game.DefaultHeight)
	state.ApplyMove(game.Column(3))
	before := state.String()

	_, err := Search(state, 300, WithSeed(9))

	require.NoError(t, err)
	require.Equal(t, before, state.String(), "Search should only mutate private copies")
	require.Equal(t, game.Player1, state.PlayerJustMoved())
}

func TestSearchForcedWin(t *testing.T) {
	for _, policy := range []FinalPolicy{MostVisits, WinRate} {
		t.Run(policy.String(), func(t *testing.T) {
			m := NewMCTS(WithSeed(11), WithFinalPolicy(policy))

			move, err := m.Search(newForcedWin(), 100)

			require.NoError(t, err)
			require.Equal(t, winMove, move, "Immediately winning move should be recommended")

			var win, lose *Node
			for _, child := range m.Root().Children() {
				switch child.Move() {
				case winMove:
					win = child
				case loseMove:
					lose = child
				}
			}
			require.NotNil(t, win)
			require.NotNil(t, lose)
			require.Equal(t, 1.0, win.WinRate(), "Winning move should always win")
			require.Equal(t, 0.0, lose.WinRate(), "Losing move should always lose")
			require.Greater(t, win.Visits(), lose.Visits())
		})
	}
}

func TestSearchSymmetry(t *testing.T) {
	m := NewMCTS(WithSeed(13))

	_, err := m.Search(newDrawGame(3, 4), 10000)

	require.NoError(t, err)
	require.Len(t, m.Root().Children(), 3)
	for _, child := range m.Root().Children() {
		require.InDelta(t, 0.5, child.WinRate(), 0.05, "Equal moves should converge to the same win rate")
	}
}

func TestSearchFindsWinningLines(t *testing.T) {
	t.Run("nim", func(t *testing.T) {
		// Taking one chip leaves a multiple of four, a lost position for the opponent
		move, err := Search(game.NewNim(5), 2000, WithSeed(17))

		require.NoError(t, err)
		require.Equal(t, game.Take(1), move)
	})

	t.Run("connect4", func(t *testing.T) {
		state := game.NewConnect4(game.DefaultWidth, game.DefaultHeight)
		for _, col := range []game.Column{0, 1, 0, 1, 0, 1} {
			state.ApplyMove(col)
		}

		move, err := Search(state, 1000, WithSeed(19))

		require.NoError(t, err)
		require.Equal(t, game.Column(0), move, "Should complete the vertical line instead of letting the opponent win")
	})
}

func TestSearchDeadline(t *testing.T) {
	m := NewMCTS(WithSeed(23), WithDuration(time.Nanosecond), WithMetrics())

	move, err := m.Search(game.NewConnect4(game.DefaultWidth, game.DefaultHeight), 1_000_000)

	require.NoError(t, err, "Expired deadline should still return the best estimate")
	require.NotNil(t, move)
	require.True(t, m.Metric().DeadlineHit)
	require.GreaterOrEqual(t, m.Root().Visits(), 1, "At least one iteration should always run")
	require.Less(t, m.Root().Visits(), 1_000_000)
}

func TestOptions(t *testing.T) {
	m := NewMCTS(WithExploration(-1), WithDuration(-time.Second), WithRand(nil))

	require.Equal(t, Exploration, m.exploration, "Negative exploration should be ignored")
	require.Zero(t, m.duration, "Negative duration should be ignored")
	require.NotNil(t, m.rand, "A random source should always be set")
	require.Equal(t, MostVisits, m.policy)
}
