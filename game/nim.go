package game

import "fmt"

const DefaultChips = 15

// MaxTake is the largest number of chips a player may remove in one move.
const MaxTake = 3

// Take is a Nim move: the number of chips removed from the pile.
type Take int

func (t Take) String() string {
	return fmt.Sprintf("take%d", int(t))
}

// Nim is a single pile game. Players alternately remove between 1 and MaxTake
// chips; whoever takes the last chip wins.
type Nim struct {
	chips     int
	justMoved Player
}

// NewNim returns a pile of chips where Player1 moves first.
func NewNim(chips int) *Nim {
	return &Nim{chips: chips, justMoved: Player2}
}

func (n *Nim) Clone() State {
	return &Nim{chips: n.chips, justMoved: n.justMoved}
}

func (n *Nim) ApplyMove(move Move) {
	take, ok := move.(Take)
	if !ok {
		panic(fmt.Sprintf("nim: unexpected move type %T", move))
	}
	if take < 1 || take > MaxTake || int(take) > n.chips {
		panic(fmt.Sprintf("nim: cannot take %d of %d chips", take, n.chips))
	}
	n.chips -= int(take)
	n.justMoved = n.justMoved.Opponent()
}

func (n *Nim) LegalMoves() []Move {
	moves := make([]Move, 0, MaxTake)
	for take := 1; take <= MaxTake && take <= n.chips; take++ {
		moves = append(moves, Take(take))
	}
	return moves
}

func (n *Nim) Result(player Player) float64 {
	if n.justMoved == player {
		return Win
	}
	return Loss
}

func (n *Nim) PlayerJustMoved() Player {
	return n.justMoved
}

// Chips is the number of chips left on the pile.
func (n *Nim) Chips() int {
	return n.chips
}

func (n *Nim) String() string {
	return fmt.Sprintf("Chips: %d JustPlayed: %d\n", n.chips, int(n.justMoved))
}
