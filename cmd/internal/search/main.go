package search

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
	"uct/config"
	"uct/game"
	"uct/searcher"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	Config *config.Config

	game        string
	iterations  int
	exploration float64
	policy      string
	seed        uint64
	duration    time.Duration
	verbose     bool
}

func (*Command) Name() string     { return "search" }
func (*Command) Synopsis() string { return "Search the opening position and dump the tree" }
func (*Command) Usage() string {
	return `search [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.game, "game", c.Config.Game, "game to search")
	flags.IntVar(&c.iterations, "iterations", c.Config.Iterations, "number of UCT iterations")
	flags.Float64Var(&c.exploration, "exploration", c.Config.Exploration, "UCB1 exploration constant")
	flags.StringVar(&c.policy, "policy", c.Config.Policy, "final move policy (visits|winrate)")
	flags.Uint64Var(&c.seed, "seed", c.Config.Seed, "random seed, 0 for a time-based one")
	flags.DurationVar(&c.duration, "limit", c.Config.Duration, "wall-clock limit for the search")
	flags.BoolVar(&c.verbose, "v", false, "dump the whole tree instead of the root's children")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := game.New(c.game)
	if err != nil {
		log.Error().Err(err).Msg("search")
		return subcommands.ExitUsageError
	}
	cfg := *c.Config
	cfg.Exploration = c.exploration
	cfg.Policy = c.policy
	cfg.Seed = c.seed
	cfg.Duration = c.duration
	options, err := cfg.SearchOptions()
	if err != nil {
		log.Error().Err(err).Msg("search")
		return subcommands.ExitUsageError
	}

	m := searcher.NewMCTS(append(options, searcher.WithMetrics())...)
	move, err := m.Search(state, c.iterations)
	if err != nil {
		log.Error().Err(err).Msg("search")
		return subcommands.ExitFailure
	}
	report(os.Stdout, move, m, c.verbose)
	return subcommands.ExitSuccess
}

func report(out io.Writer, move game.Move, m *searcher.MCTS, verbose bool) {
	metric := m.Metric()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "move:\t%v\n", move)
	fmt.Fprintf(w, "iterations:\t%d\n", metric.Iterations)
	fmt.Fprintf(w, "tree size:\t%d\n", metric.TreeSize)
	fmt.Fprintf(w, "max depth:\t%d\n", metric.MaxDepth)
	fmt.Fprintf(w, "rollout plies:\t%d\n", metric.RolloutPlies)
	fmt.Fprintf(w, "duration:\t%v\n", metric.Duration)
	if metric.DeadlineHit {
		fmt.Fprintf(w, "deadline hit:\ttrue\n")
	}
	w.Flush()

	if verbose {
		fmt.Fprintln(out, m.Root().TreeString(0))
	} else {
		fmt.Fprint(out, m.Root().ChildrenString())
	}
}
