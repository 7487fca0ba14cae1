package player

import (
	"testing"
	"uct/game"
	"uct/searcher"

	"github.com/stretchr/testify/require"
)

func TestUCTPlayer(t *testing.T) {
	t.Run("finds the winning move and reports its search", func(t *testing.T) {
		p := NewUCT("uct", 2000, searcher.WithSeed(1))

		move, err := p.FindMove(game.NewNim(5))

		require.NoError(t, err)
		require.Equal(t, game.Take(1), move)
		require.Equal(t, 2000, p.LastMetric().Iterations, "Metrics should always be collected")
		require.Equal(t, 2000, p.Tree().Visits())
		require.Equal(t, "uct", p.Name())
	})

	t.Run("wraps the searcher error", func(t *testing.T) {
		p := NewUCT("uct", 10, searcher.WithSeed(1))

		_, err := p.FindMove(game.NewNim(0))

		require.ErrorIs(t, err, searcher.ErrNoLegalMove)
		require.Contains(t, err.Error(), "uct")
	})
}

func TestRandomPlayer(t *testing.T) {
	t.Run("plays legal moves", func(t *testing.T) {
		p := NewRandom("random", 7)
		state := game.NewConnect4(game.DefaultWidth, game.DefaultHeight)

		for i := 0; i < 10; i++ {
			move, err := p.FindMove(state)
			require.NoError(t, err)
			require.Contains(t, state.LegalMoves(), move)
		}
	})

	t.Run("same seed plays the same moves", func(t *testing.T) {
		p1 := NewRandom("a", 3)
		p2 := NewRandom("b", 3)
		state := game.NewNim(game.DefaultChips)

		for i := 0; i < 10; i++ {
			m1, _ := p1.FindMove(state)
			m2, _ := p2.FindMove(state)
			require.Equal(t, m1, m2)
		}
	})

	t.Run("fails on a finished game", func(t *testing.T) {
		_, err := NewRandom("random", 1).FindMove(game.NewNim(0))

		require.ErrorIs(t, err, searcher.ErrNoLegalMove)
	})
}

func TestNew(t *testing.T) {
	p, err := New("uct", "p1", 100, 5)
	require.NoError(t, err)
	require.IsType(t, &UCT{}, p)
	require.Implements(t, (*MetricPlayer)(nil), p)

	p, err = New("random", "p2", 0, 5)
	require.NoError(t, err)
	require.IsType(t, &Random{}, p)

	_, err = New("human", "p3", 0, 0)
	require.Error(t, err)
}
