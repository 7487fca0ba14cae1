package game

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth  = 7
	DefaultHeight = 6
)

// Column is a Connect4 move: the column a counter is dropped into.
type Column int

func (c Column) String() string {
	return fmt.Sprintf("col%d", int(c))
}

// Connect4 is a game of four in a row. Players alternately drop counters
// into one of the columns; the counter falls to the lowest empty row. The
// first to line up four counters horizontally, vertically or diagonally wins.
type Connect4 struct {
	width      int
	height     int
	board      [][]Player // board[column][row], row 0 is the bottom
	justMoved  Player
	winner     Player
	movesCount int
}

// NewConnect4 returns an empty board where Player1 moves first.
func NewConnect4(width, height int) *Connect4 {
	board := make([][]Player, width)
	for col := range board {
		board[col] = make([]Player, height)
	}
	return &Connect4{
		width:     width,
		height:    height,
		board:     board,
		justMoved: Player2,
	}
}

func (c *Connect4) Clone() State {
	board := make([][]Player, c.width)
	for col := range board {
		board[col] = make([]Player, c.height)
		copy(board[col], c.board[col])
	}
	return &Connect4{
		width:      c.width,
		height:     c.height,
		board:      board,
		justMoved:  c.justMoved,
		winner:     c.winner,
		movesCount: c.movesCount,
	}
}

func (c *Connect4) ApplyMove(move Move) {
	col, ok := move.(Column)
	if !ok {
		panic(fmt.Sprintf("connect4: unexpected move type %T", move))
	}
	if c.winner != NoPlayer {
		panic("connect4: game is already won")
	}
	if col < 0 || int(col) >= c.width || c.board[col][c.height-1] != NoPlayer {
		panic(fmt.Sprintf("connect4: column %d is not playable", col))
	}

	row := 0
	for c.board[col][row] != NoPlayer {
		row++
	}

	c.justMoved = c.justMoved.Opponent()
	c.board[col][row] = c.justMoved
	c.movesCount++
	if c.wins(int(col), row) {
		c.winner = c.justMoved
	}
}

func (c *Connect4) LegalMoves() []Move {
	if c.winner != NoPlayer {
		return nil
	}
	moves := make([]Move, 0, c.width)
	for col := 0; col < c.width; col++ {
		if c.board[col][c.height-1] == NoPlayer {
			moves = append(moves, Column(col))
		}
	}
	return moves
}

func (c *Connect4) Result(player Player) float64 {
	switch c.winner {
	case NoPlayer:
		return Draw
	case player:
		return Win
	default:
		return Loss
	}
}

func (c *Connect4) PlayerJustMoved() Player {
	return c.justMoved
}

// At returns the owner of the cell, NoPlayer when empty.
func (c *Connect4) At(col, row int) Player {
	return c.board[col][row]
}

// wins checks whether the counter at (x, y) completes a line of four.
func (c *Connect4) wins(x, y int) bool {
	me := c.board[x][y]
	for _, d := range [4][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}} {
		count := 1
		for p := 1; c.onBoard(x+p*d[0], y+p*d[1]) && c.board[x+p*d[0]][y+p*d[1]] == me; p++ {
			count++
		}
		for n := 1; c.onBoard(x-n*d[0], y-n*d[1]) && c.board[x-n*d[0]][y-n*d[1]] == me; n++ {
			count++
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

func (c *Connect4) onBoard(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Connect4) String() string {
	var b strings.Builder
	for row := c.height - 1; row >= 0; row-- {
		for col := 0; col < c.width; col++ {
			switch c.board[col][row] {
			case Player1:
				b.WriteByte('X')
			case Player2:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
