package arena

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"uct/config"
	"uct/experiments"
	"uct/experiments/metrics"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	Config *config.Config

	game     string
	p1       string
	p2       string
	iters1   int
	iters2   int
	games    int
	workers  int
	seed     uint64
	maxMoves int
	out      string
}

func (*Command) Name() string     { return "arena" }
func (*Command) Synopsis() string { return "Play a series of games between two players and report results" }
func (*Command) Usage() string {
	return `arena [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.game, "game", c.Config.Game, "game to play")
	flags.StringVar(&c.p1, "p1", "uct", "first player kind (uct|random)")
	flags.StringVar(&c.p2, "p2", "random", "second player kind (uct|random)")
	flags.IntVar(&c.iters1, "p1-iterations", c.Config.Iterations, "UCT iterations per move for the first player")
	flags.IntVar(&c.iters2, "p2-iterations", c.Config.Iterations, "UCT iterations per move for the second player")
	flags.IntVar(&c.games, "games", c.Config.Games, "number of games; colors are swapped every game")
	flags.IntVar(&c.workers, "workers", c.Config.Workers, "number of games played at once")
	flags.Uint64Var(&c.seed, "seed", c.Config.Seed, "arena seed, 0 for a time-based one")
	flags.IntVar(&c.maxMoves, "max-moves", c.Config.MaxMoves, "cut games off after this many moves")
	flags.StringVar(&c.out, "out", c.Config.OutDir, "directory to write CSV records to, empty to skip writing")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	playerConfig := func(id int, kind string, iterations int) metrics.PlayerConfig {
		return metrics.PlayerConfig{
			ID:          id,
			Kind:        kind,
			Iterations:  iterations,
			Exploration: c.Config.Exploration,
			Duration:    c.Config.Duration,
			Policy:      c.Config.Policy,
		}
	}
	a := &experiments.Arena{
		Game:     c.game,
		Players:  [2]metrics.PlayerConfig{playerConfig(1, c.p1, c.iters1), playerConfig(2, c.p2, c.iters2)},
		Games:    c.games,
		Workers:  c.workers,
		Seed:     c.seed,
		MaxMoves: c.maxMoves,
	}

	result, err := a.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("arena")
		return subcommands.ExitFailure
	}
	report(os.Stdout, a, result)

	if c.out != "" {
		dir, err := a.Write(c.out, result)
		if err != nil {
			log.Error().Err(err).Msg("arena")
			return subcommands.ExitFailure
		}
		fmt.Printf("records written to %s\n", dir)
	}
	return subcommands.ExitSuccess
}

func report(out io.Writer, a *experiments.Arena, result *experiments.Result) {
	s := result.Summary
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run:\t%s\n", result.Run)
	fmt.Fprintf(w, "games:\t%d\n", s.Games)

	for _, p := range a.Players {
		fmt.Fprintf(w, "%s#%d wins:\t%d\t(%.1f%%)\n", p.Kind, p.ID, s.Wins[p.ID], 100*float64(s.Wins[p.ID])/float64(s.Games))
	}
	fmt.Fprintf(w, "draws:\t%d\n", s.Draws)
	if s.Unfinished > 0 {
		fmt.Fprintf(w, "unfinished:\t%d\n", s.Unfinished)
	}
	fmt.Fprintf(w, "first mover wins:\t%d\n", s.FirstMoverWins)
	w.Flush()
}
