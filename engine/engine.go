package engine

import (
	"errors"
	"time"
	"uct/game"
	"uct/searcher"
)

const MaxMoves = 10000

var (
	// ErrMoveLimit is returned when a game is cut off before it is over.
	ErrMoveLimit   = errors.New("move limit reached")
	ErrIllegalMove = errors.New("illegal move")
)

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (Outcome, error)
}

type MoveRecord struct {
	Step   int
	Player game.Player
	Move   game.Move
	searcher.SearchMetric
}

type Outcome struct {
	Winner    game.Player // NoPlayer on a draw or an unfinished game
	Finished  bool
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Moves     []MoveRecord
}
