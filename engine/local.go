package engine

import (
	"fmt"
	"slices"
	"time"
	"uct/game"
	"uct/player"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

type Option func(l *Local)

func WithMaxMoves(maxMoves int) Option {
	return func(l *Local) {
		if maxMoves > 0 {
			l.maxMoves = maxMoves
		}
	}
}

// WithRenderer draws the board after every move.
func WithRenderer(r *Renderer) Option {
	return func(l *Local) {
		l.renderer = r
	}
}

// Local plays two in-process players against each other.
type Local struct {
	state    game.State
	players  [2]player.Player
	maxMoves int
	renderer *Renderer
}

// NewLocal sets up a game from state, first moved by whichever player did not
// just move. p1 plays as game.Player1, p2 as game.Player2.
func NewLocal(state game.State, p1, p2 player.Player, options ...Option) *Local {
	if p1 == nil || p2 == nil {
		panic("need two players")
	}
	l := &Local{
		state:    state,
		players:  [2]player.Player{p1, p2},
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// State is the current position.
func (l *Local) State() game.State {
	return l.state
}

// Run executes the entire game loop until the game is over.
func (l *Local) Run() (Outcome, error) {
	outcome := Outcome{StartTime: time.Now()}
	toMove := l.state.PlayerJustMoved().Opponent()
	log.Info().Msgf("%s (%s) is starting", l.playerOf(toMove).Name(), toMove)
	if l.renderer != nil {
		l.renderer.Render(l.state, nil)
	}

	finish := func() {
		outcome.EndTime = time.Now()
		outcome.Duration = outcome.EndTime.Sub(outcome.StartTime)
	}

	for step := 1; !game.IsTerminal(l.state); step++ {
		if step > l.maxMoves {
			finish()
			log.Warn().Msgf("stopped after %d moves without a result", l.maxMoves)
			return outcome, fmt.Errorf("%w: %d", ErrMoveLimit, l.maxMoves)
		}

		current := l.state.PlayerJustMoved().Opponent()
		p := l.playerOf(current)

		// Players only ever see a copy
		move, err := p.FindMove(l.state.Clone())
		if err != nil {
			finish()
			return outcome, fmt.Errorf("move %d: %w", step, err)
		}
		if !slices.Contains(l.state.LegalMoves(), move) {
			finish()
			return outcome, fmt.Errorf("%w: %s played %v at move %d", ErrIllegalMove, p.Name(), move, step)
		}

		record := MoveRecord{Step: step, Player: current, Move: move}
		if mp, ok := p.(player.MetricPlayer); ok {
			record.SearchMetric = mp.LastMetric()
		}
		outcome.Moves = append(outcome.Moves, record)

		l.state.ApplyMove(move)
		log.Debug().Msgf("move %d: %s plays %v", step, p.Name(), move)
		if l.renderer != nil {
			l.renderer.Render(l.state, move)
		}
	}

	finish()
	outcome.Finished = true
	outcome.Winner = game.Winner(l.state)
	if outcome.Winner == game.NoPlayer {
		log.Info().Msgf("game drawn after %d moves", len(outcome.Moves))
	} else {
		log.Info().Msgf("%s (%s) won after %d moves", l.playerOf(outcome.Winner).Name(), outcome.Winner, len(outcome.Moves))
	}
	return outcome, nil
}

func (l *Local) playerOf(p game.Player) player.Player {
	if p == game.Player2 {
		return l.players[1]
	}
	return l.players[0]
}
