package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord is one finished game inside a series.
type GameRecord struct {
	ID      int
	Pairing string
	GameMetric
}

// MoveRecord is one move's search metrics inside a recorded game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Tally aggregates a pairing's results across a series.
type Tally struct {
	Pairing string
	Games   int
	XWins   int
	OWins   int
	Draws   int
}

// Writer dumps series results as CSV files under a timestamped
// directory, one directory per run.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir is the directory this writer's files land in.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "pairing", "result", "moves", "start_time", "end_time", "duration"}
	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Pairing,
			record.Result.String(),
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
		if err = writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "mover", "goroutines", "episodes", "duration"}
	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Mover.String(),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Episodes),
			record.Duration.String(),
		}
		if err = writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteTallies(tallies []Tally) error {
	path := filepath.Join(w.baseDir, "tallies.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tallies file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"pairing", "games", "x_wins", "o_wins", "draws"}
	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write tallies header: %w", err)
	}

	for _, tally := range tallies {
		row := []string{
			tally.Pairing,
			strconv.Itoa(tally.Games),
			strconv.Itoa(tally.XWins),
			strconv.Itoa(tally.OWins),
			strconv.Itoa(tally.Draws),
		}
		if err = writer.Write(row); err != nil {
			return fmt.Errorf("failed to write tally row: %w", err)
		}
	}

	return nil
}
