package searcher

import (
	"fmt"
	"math"
)

// Hyperparameters for MCTS

// Exploration is the default UCB1 exploration constant C. Larger values favor
// under-sampled children over high win-rate ones.
const Exploration = 1.0

// FinalPolicy decides which root child is recommended once the search ends.
type FinalPolicy int

const (
	// MostVisits recommends the child with the highest visit count ("robust
	// child"). It is the production default.
	MostVisits FinalPolicy = iota
	// WinRate recommends the child with the highest wins/visits.
	WinRate
)

func (p FinalPolicy) String() string {
	switch p {
	case MostVisits:
		return "visits"
	case WinRate:
		return "winrate"
	default:
		return fmt.Sprintf("FinalPolicy(%d)", int(p))
	}
}

// ParseFinalPolicy maps the names printed by FinalPolicy.String back to values.
func ParseFinalPolicy(name string) (FinalPolicy, error) {
	switch name {
	case "visits":
		return MostVisits, nil
	case "winrate":
		return WinRate, nil
	default:
		return MostVisits, fmt.Errorf("unknown final move policy %q", name)
	}
}

type uct struct {
	numerator float64
}

// newUCT precomputes 2*C^2*ln(N) for a parent with N visits.
func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: 2 * c * c * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + C*sqrt(2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
