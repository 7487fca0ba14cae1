package searcher

import (
	"fmt"
	"slices"
	"uct/game"
)

type mockMove int

func (m mockMove) String() string {
	return fmt.Sprintf("m%d", int(m))
}

// mockState exposes a fixed move list; any move played makes it terminal.
type mockState struct {
	player game.Player
	moves  []game.Move
	played []game.Move
	result float64 // from the viewpoint of player
}

func (m *mockState) Clone() game.State {
	clone := *m
	clone.moves = slices.Clone(m.moves)
	clone.played = slices.Clone(m.played)
	return &clone
}

func (m *mockState) ApplyMove(move game.Move) {
	m.played = append(m.played, move)
	m.player = m.player.Opponent()
	m.moves = nil
	m.result = 1 - m.result
}

func (m *mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m *mockState) Result(player game.Player) float64 {
	if player == m.player {
		return m.result
	}
	return 1 - m.result
}

func (m *mockState) PlayerJustMoved() game.Player {
	return m.player
}

const (
	loseMove mockMove = iota
	winMove
	replyMove
)

// forcedWin lets the first player either win at once or hand the opponent a
// move that wins for them.
type forcedWin struct {
	justMoved game.Player
	history   []game.Move
}

func newForcedWin() *forcedWin {
	return &forcedWin{justMoved: game.Player2}
}

func (f *forcedWin) Clone() game.State {
	return &forcedWin{justMoved: f.justMoved, history: slices.Clone(f.history)}
}

func (f *forcedWin) ApplyMove(move game.Move) {
	f.history = append(f.history, move)
	f.justMoved = f.justMoved.Opponent()
}

func (f *forcedWin) LegalMoves() []game.Move {
	switch {
	case len(f.history) == 0:
		return []game.Move{loseMove, winMove}
	case len(f.history) == 1 && f.history[0] == loseMove:
		return []game.Move{replyMove}
	default:
		return nil
	}
}

func (f *forcedWin) Result(player game.Player) float64 {
	winner := game.Player2
	if f.history[0] == winMove {
		winner = game.Player1
	}
	if player == winner {
		return game.Win
	}
	return game.Loss
}

func (f *forcedWin) PlayerJustMoved() game.Player {
	return f.justMoved
}

// drawGame is a uniform tree of the given branching and depth where every
// line ends in a draw, so no move is better than another.
type drawGame struct {
	branching int
	depth     int
	plies     int
	justMoved game.Player
}

func newDrawGame(branching, depth int) *drawGame {
	return &drawGame{branching: branching, depth: depth, justMoved: game.Player2}
}

func (d *drawGame) Clone() game.State {
	clone := *d
	return &clone
}

func (d *drawGame) ApplyMove(move game.Move) {
	d.plies++
	d.justMoved = d.justMoved.Opponent()
}

func (d *drawGame) LegalMoves() []game.Move {
	if d.plies >= d.depth {
		return nil
	}
	moves := make([]game.Move, d.branching)
	for i := range moves {
		moves[i] = mockMove(i)
	}
	return moves
}

func (d *drawGame) Result(player game.Player) float64 {
	return game.Draw
}

func (d *drawGame) PlayerJustMoved() game.Player {
	return d.justMoved
}
