package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"
	"uct/engine"
	"uct/experiments/metrics"
	"uct/game"
	"uct/player"
	"uct/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Arena plays a series of games between two player configurations. Seats are
// swapped every game so each configuration moves first half of the time.
type Arena struct {
	Game     string
	Players  [2]metrics.PlayerConfig
	Games    int
	Workers  int
	Seed     uint64 // 0 picks a time-based seed
	MaxMoves int
}

type Summary struct {
	Games          int
	Wins           map[int]int // by PlayerConfig.ID
	Draws          int
	Unfinished     int
	FirstMoverWins int
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d wins=%v draws=%d unfinished=%d first_mover_wins=%d",
		s.Games, s.Wins, s.Draws, s.Unfinished, s.FirstMoverWins)
}

type Result struct {
	Run     uuid.UUID
	Summary Summary
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

// Run plays every game, at most Workers at a time. It stops at the first game
// that fails for any reason other than hitting the move limit.
func (a *Arena) Run(ctx context.Context) (*Result, error) {
	if a.Games <= 0 {
		return nil, fmt.Errorf("arena needs at least one game, got %d", a.Games)
	}
	if _, err := game.New(a.Game); err != nil {
		return nil, err
	}
	workers := a.Workers
	if workers <= 0 {
		workers = 1
	}

	run := uuid.New()
	seeds := a.seeds()
	seats := make([][2]int, a.Games)
	outcomes := make([]engine.Outcome, a.Games)

	log.Info().Msgf("starting arena %s: %d games of %s on %d workers", run, a.Games, a.Game, workers)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < a.Games; i++ {
		first, second := a.Players[0], a.Players[1]
		if i%2 == 1 {
			first, second = second, first
		}
		seats[i] = [2]int{first.ID, second.ID}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := a.playGame(first, second, seeds[i])
			if err != nil && !errors.Is(err, engine.ErrMoveLimit) {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			outcomes[i] = outcome
			log.Info().Msgf("completed game %d of %d: winner %s after %d moves", i+1, a.Games, outcome.Winner, len(outcome.Moves))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	games, moves := metrics.Records(outcomes, seats)
	result := &Result{Run: run, Summary: summarize(games), Games: games, Moves: moves}
	log.Info().Msgf("completed arena %s in %v: %s", run, time.Since(start), result.Summary)
	return result, nil
}

// seeds draws two seeds per game up front so results do not depend on the
// order in which workers pick up games.
func (a *Arena) seeds() [][2]uint64 {
	seed := a.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewSource(seed))
	seeds := make([][2]uint64, a.Games)
	for i := range seeds {
		seeds[i] = [2]uint64{r.Uint64() | 1, r.Uint64() | 1}
	}
	return seeds
}

func (a *Arena) playGame(first, second metrics.PlayerConfig, seeds [2]uint64) (engine.Outcome, error) {
	state, err := game.New(a.Game)
	if err != nil {
		return engine.Outcome{}, err
	}
	p1, err := newPlayer(first, seeds[0])
	if err != nil {
		return engine.Outcome{}, err
	}
	p2, err := newPlayer(second, seeds[1])
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.NewLocal(state, p1, p2, engine.WithMaxMoves(a.MaxMoves)).Run()
}

func newPlayer(config metrics.PlayerConfig, seed uint64) (player.Player, error) {
	options := []searcher.Option{}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Policy != "" {
		policy, err := searcher.ParseFinalPolicy(config.Policy)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithFinalPolicy(policy))
	}
	return player.New(config.Kind, fmt.Sprintf("%s#%d", config.Kind, config.ID), config.Iterations, seed, options...)
}

func summarize(games []metrics.GameRecord) Summary {
	s := Summary{Games: len(games), Wins: map[int]int{}}
	for _, record := range games {
		switch {
		case !record.Finished:
			s.Unfinished++
		case record.Winner == 0:
			s.Draws++
		default:
			s.Wins[record.Winner]++
			if record.Outcome.Winner == game.Player1 {
				s.FirstMoverWins++
			}
		}
	}
	return s
}

// Write stores the result under <outDir>/<run id>/ and returns that directory.
func (a *Arena) Write(outDir string, result *Result) (string, error) {
	writer, err := metrics.NewWriter(outDir, result.Run)
	if err != nil {
		return "", err
	}
	if err := writer.WritePlayerConfigs(a.Players[:]); err != nil {
		return "", err
	}
	log.Info().Msg("stored player configs")
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
