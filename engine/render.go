package engine

import (
	"fmt"
	"io"
	"strings"
	"uct/game"

	"github.com/muesli/termenv"
)

// Renderer writes boards to a terminal, coloring the pieces of each player
// when the output supports it.
type Renderer struct {
	out    *termenv.Output
	pieces map[rune]termenv.Style
}

// NewRenderer writes to w. With color disabled the board is written as plain
// text whatever w is.
func NewRenderer(w io.Writer, color bool) *Renderer {
	var out *termenv.Output
	if color {
		out = termenv.NewOutput(w)
	} else {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return &Renderer{
		out: out,
		pieces: map[rune]termenv.Style{
			'X': out.String().Foreground(out.Color("1")).Bold(),
			'O': out.String().Foreground(out.Color("3")).Bold(),
		},
	}
}

// Render draws state, preceded by the move that led to it if there is one.
func (r *Renderer) Render(state game.State, last game.Move) {
	var sb strings.Builder
	if last != nil {
		fmt.Fprintf(&sb, "%s played %v\n", state.PlayerJustMoved(), last)
	}
	for _, c := range fmt.Sprint(state) {
		if style, ok := r.pieces[c]; ok {
			sb.WriteString(style.Styled(string(c)))
			continue
		}
		sb.WriteRune(c)
	}
	sb.WriteString("\n")
	fmt.Fprint(r.out, sb.String())
}
