package searcher

import (
	"fmt"
	"math"
	"strings"
	"uct/game"
	"uct/utils"
)

// Node is one explored position of the search tree. Wins are always counted
// from the viewpoint of the player who made the move leading to the node.
type Node struct {
	move     game.Move
	parent   *Node // non-owning, walked upwards during backpropagation only
	children []*Node
	untried  []game.Move
	wins     float64
	visits   int
	player   game.Player
}

// NewNode creates a node over state. move is nil and parent is nil for the
// root. A terminal state produces a node with no untried moves.
func NewNode(state game.State, move game.Move, parent *Node) *Node {
	moves := state.LegalMoves()
	untried := make([]game.Move, len(moves))
	copy(untried, moves)

	return &Node{
		move:     move,
		parent:   parent,
		children: make([]*Node, 0, len(untried)),
		untried:  untried,
		player:   state.PlayerJustMoved(),
	}
}

// SelectChild returns the child maximizing UCB1 with exploration constant c.
// Ties go to the first child in creation order.
func (n *Node) SelectChild(c float64) *Node {
	if len(n.children) == 0 {
		panic("cannot select a child: node has no children")
	}
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(c, float64(n.visits))

	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		if child.visits == 0 {
			panic("cannot compute UCT: 0 visits")
		}
		score := policy.evaluate(child.wins, float64(child.visits))
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// AddChild expands move, which must be untried, into a new child over state.
func (n *Node) AddChild(move game.Move, state game.State) *Node {
	i := utils.FindIndex(n.untried, move)
	if i < 0 {
		panic(fmt.Sprintf("cannot expand move %v: not an untried move of %v", move, n))
	}
	n.untried = utils.RemoveAt(n.untried, i)

	child := NewNode(state, move, n)
	n.children = append(n.children, child)
	return child
}

// Update records one simulation whose result is already expressed from the
// viewpoint of n.PlayerJustMoved().
func (n *Node) Update(result float64) {
	if result < game.Loss || result > game.Win || math.IsNaN(result) {
		panic(fmt.Sprintf("result %v outside [0, 1]", result))
	}
	n.visits++
	n.wins += result
}

func (n *Node) Move() game.Move {
	return n.move
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) UntriedMoves() []game.Move {
	return n.untried
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Wins() float64 {
	return n.wins
}

func (n *Node) PlayerJustMoved() game.Player {
	return n.player
}

// WinRate is wins/visits. It panics on an unvisited node.
func (n *Node) WinRate() float64 {
	if n.visits == 0 {
		panic("cannot compute win rate: 0 visits")
	}
	return n.wins / float64(n.visits)
}

func (n *Node) IsFullyExpanded() bool {
	return len(n.untried) == 0 && len(n.children) > 0
}

func (n *Node) IsTerminal() bool {
	return len(n.untried) == 0 && len(n.children) == 0
}

// Size counts the nodes of the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// bestChild picks the recommended child according to policy, or nil when the
// node has no children. Ties go to the first child in creation order.
func (n *Node) bestChild(policy FinalPolicy) *Node {
	var best *Node
	for _, child := range n.children {
		if best == nil {
			best = child
			continue
		}
		switch policy {
		case WinRate:
			if child.WinRate() > best.WinRate() {
				best = child
			}
		default:
			if child.visits > best.visits {
				best = child
			}
		}
	}
	return best
}

func (n *Node) String() string {
	return fmt.Sprintf("[M:%v W/V:%g/%d U:%v]", n.move, n.wins, n.visits, n.untried)
}

// TreeString dumps the subtree, one node per line, indented by depth.
func (n *Node) TreeString(indent int) string {
	var b strings.Builder
	n.writeTree(&b, indent)
	return b.String()
}

func (n *Node) writeTree(b *strings.Builder, indent int) {
	b.WriteByte('\n')
	for i := 0; i < indent; i++ {
		b.WriteString("| ")
	}
	b.WriteString(n.String())
	for _, child := range n.children {
		child.writeTree(b, indent+1)
	}
}

// ChildrenString dumps the direct children, one per line.
func (n *Node) ChildrenString() string {
	var b strings.Builder
	for _, child := range n.children {
		b.WriteString(child.String())
		b.WriteByte('\n')
	}
	return b.String()
}
