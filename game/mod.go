package game

import (
	"errors"
	"fmt"
)

// Outcomes of a finished game from one player's point of view.
const (
	Loss = 0.0
	Draw = 0.5
	Win  = 1.0
)

var ErrUnknownGame = errors.New("unknown game")

// Player identifies one of the two sides. By convention the players are
// numbered 1 and 2.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	return 3 - p
}

func (p Player) String() string {
	return fmt.Sprintf("player%d", int(p))
}

// Move is an action that takes a State to its successor. Implementations must
// be comparable with == since searchers look moves up by value.
type Move interface {
	fmt.Stringer
}

// State is one valid configuration of a two-player, zero-sum, deterministic,
// complete information game. Any game that wants to be played by a searcher
// implements it.
type State interface {
	// Clone returns a deep copy sharing no mutable memory with the receiver.
	Clone() State
	// ApplyMove plays move in place and must update PlayerJustMoved.
	ApplyMove(move Move)
	// LegalMoves is empty if and only if the state is terminal.
	LegalMoves() []Move
	// Result is the outcome in [0, 1] from player's point of view. Only
	// defined on terminal states.
	Result(player Player) float64
	// PlayerJustMoved is the player whose move produced this state.
	PlayerJustMoved() Player
}

// IsTerminal reports whether no further play is possible from state.
func IsTerminal(state State) bool {
	return len(state.LegalMoves()) == 0
}

// Winner returns the winner of a terminal state, or NoPlayer for a draw.
func Winner(state State) Player {
	last := state.PlayerJustMoved()
	switch state.Result(last) {
	case Win:
		return last
	case Loss:
		return last.Opponent()
	default:
		return NoPlayer
	}
}

// New returns the initial state of the game registered under name.
func New(name string) (State, error) {
	switch name {
	case "connect4":
		return NewConnect4(DefaultWidth, DefaultHeight), nil
	case "nim":
		return NewNim(DefaultChips), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
}

// Names lists the games accepted by New.
func Names() []string {
	return []string{"connect4", "nim"}
}
