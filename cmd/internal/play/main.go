package play

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"uct/config"
	"uct/engine"
	"uct/game"
	"uct/player"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	Config *config.Config

	game       string
	p1         string
	p2         string
	iterations int
	seed       uint64
	maxMoves   int
	color      bool
	quiet      bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play one game between two players" }
func (*Command) Usage() string {
	return `play [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.game, "game", c.Config.Game, "game to play")
	flags.StringVar(&c.p1, "p1", "uct", "player1 kind (uct|random)")
	flags.StringVar(&c.p2, "p2", "uct", "player2 kind (uct|random)")
	flags.IntVar(&c.iterations, "iterations", c.Config.Iterations, "UCT iterations per move")
	flags.Uint64Var(&c.seed, "seed", c.Config.Seed, "random seed, 0 for a time-based one")
	flags.IntVar(&c.maxMoves, "max-moves", c.Config.MaxMoves, "cut the game off after this many moves")
	flags.BoolVar(&c.color, "color", c.Config.Color, "color the board")
	flags.BoolVar(&c.quiet, "q", false, "only print the result")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := game.New(c.game)
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitUsageError
	}
	// Seeds are handed to each player separately
	cfg := *c.Config
	cfg.Seed = 0
	options, err := cfg.SearchOptions()
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitUsageError
	}

	p1, err := player.New(c.p1, "p1:"+c.p1, c.iterations, c.seed, options...)
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitUsageError
	}
	// Offset the second seed so that mirrored players do not play identically
	seed2 := c.seed
	if seed2 != 0 {
		seed2++
	}
	p2, err := player.New(c.p2, "p2:"+c.p2, c.iterations, seed2, options...)
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitUsageError
	}

	engineOptions := []engine.Option{engine.WithMaxMoves(c.maxMoves)}
	if !c.quiet {
		engineOptions = append(engineOptions, engine.WithRenderer(engine.NewRenderer(os.Stdout, c.color)))
	}
	outcome, err := engine.NewLocal(state, p1, p2, engineOptions...).Run()
	switch {
	case errors.Is(err, engine.ErrMoveLimit):
		fmt.Printf("no result after %d moves\n", len(outcome.Moves))
		return subcommands.ExitSuccess
	case err != nil:
		log.Error().Err(err).Msg("play")
		return subcommands.ExitFailure
	}

	if outcome.Winner == game.NoPlayer {
		fmt.Printf("draw after %d moves (%v)\n", len(outcome.Moves), outcome.Duration)
	} else {
		fmt.Printf("%s wins after %d moves (%v)\n", outcome.Winner, len(outcome.Moves), outcome.Duration)
	}
	return subcommands.ExitSuccess
}
