package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"uct/engine"
	"uct/game"

	"github.com/google/uuid"
)

// PlayerConfig describes one contestant of an arena.
type PlayerConfig struct {
	ID          int
	Kind        string // "uct" or "random"
	Iterations  int
	Exploration float64
	Duration    time.Duration
	Policy      string
}

type GameRecord struct {
	ID      int
	Player1 int // PlayerConfig.ID
	Player2 int // PlayerConfig.ID
	Winner  int // PlayerConfig.ID, 0 on a draw or an unfinished game
	engine.Outcome
}

type MoveRecord struct {
	Game int // GameRecord.ID
	engine.MoveRecord
}

// Writer stores the records of one arena run as CSV files in its own
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates <outDir>/<run>.
func NewWriter(outDir string, run uuid.UUID) (*Writer, error) {
	baseDir := filepath.Join(outDir, run.String())
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WritePlayerConfigs(configs []PlayerConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			config.Duration.String(),
			config.Policy,
		})
	}
	header := []string{"id", "kind", "iterations", "exploration", "duration", "policy"}
	return w.write("players.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Player1),
			strconv.Itoa(record.Player2),
			strconv.Itoa(record.Winner),
			strconv.Itoa(int(record.Outcome.Winner)),
			strconv.FormatBool(record.Finished),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(len(record.Moves)),
		})
	}
	header := []string{"id", "player1", "player2", "winner", "winning_side", "finished", "start_time", "end_time", "duration", "total_moves"}
	return w.write("games.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(int(record.Player)),
			fmt.Sprint(record.Move),
			record.SearchMetric.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.RolloutPlies),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.TreeSize),
			strconv.FormatBool(record.DeadlineHit),
		})
	}
	header := []string{"game", "step", "player", "move", "duration", "iterations", "expansions", "rollout_plies", "max_depth", "tree_size", "deadline_hit"}
	return w.write("moves.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// Records flattens game outcomes into records. players[i] holds the config IDs
// seated as Player1 and Player2 in game i.
func Records(outcomes []engine.Outcome, players [][2]int) ([]GameRecord, []MoveRecord) {
	games := make([]GameRecord, 0, len(outcomes))
	var moves []MoveRecord
	for i, outcome := range outcomes {
		record := GameRecord{ID: i + 1, Player1: players[i][0], Player2: players[i][1], Outcome: outcome}
		switch outcome.Winner {
		case game.Player1:
			record.Winner = record.Player1
		case game.Player2:
			record.Winner = record.Player2
		}
		games = append(games, record)
		for _, move := range outcome.Moves {
			moves = append(moves, MoveRecord{Game: record.ID, MoveRecord: move})
		}
	}
	return games, moves
}
