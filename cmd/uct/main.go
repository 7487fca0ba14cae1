package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	"uct/cmd/internal/arena"
	"uct/cmd/internal/play"
	"uct/cmd/internal/search"
	"uct/config"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var configPath = flag.String("config", "", "config file (yaml, toml or json); UCT_* environment variables override it")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	setupLogging(cfg)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&play.Command{Config: cfg}, "")
	subcommands.Register(&search.Command{Config: cfg}, "")
	subcommands.Register(&arena.Command{Config: cfg}, "")

	os.Exit(int(subcommands.Execute(context.Background())))
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly, NoColor: !cfg.Color})
}
