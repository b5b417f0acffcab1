// Package experiments is the benchmark collaborator: it plays many
// matches across strategy pairings and aggregates win/draw/loss rates.
package experiments

import (
	"context"
	"fmt"
	"time"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

// Pairing names two strategy factories. Factories give every series a
// fresh strategy instance, so mutable strategy state never leaks
// between experiments.
type Pairing struct {
	Name string
	X    func() searcher.Strategy
	O    func() searcher.Strategy
}

// RunSeries plays games matches for every pairing and returns the
// per-pairing tallies along with the individual game records. If
// writer is non-nil the results are also written out as CSV.
func RunSeries(ctx context.Context, pairings []Pairing, games int, writer *metrics.Writer) ([]metrics.Tally, error) {
	var tallies []metrics.Tally
	var records []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	id := 0

	for _, pairing := range pairings {
		log.Info().Str("pairing", pairing.Name).Int("games", games).Msg("series started")
		x, o := pairing.X(), pairing.O()
		tally := metrics.Tally{Pairing: pairing.Name}

		for i := 0; i < games; i++ {
			start := time.Now()
			match := engine.NewMatch(x, o)
			result, err := match.Play(ctx)
			if err != nil {
				return nil, fmt.Errorf("series %q game %d: %w", pairing.Name, i+1, err)
			}
			end := time.Now()

			id++
			records = append(records, metrics.GameRecord{
				ID:      id,
				Pairing: pairing.Name,
				GameMetric: metrics.GameMetric{
					Result:    result,
					Moves:     match.Moves(),
					StartTime: start,
					EndTime:   end,
					Duration:  end.Sub(start),
				},
			})
			for _, mm := range match.MoveMetrics() {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}

			tally.Games++
			switch result {
			case game.XWins:
				tally.XWins++
			case game.OWins:
				tally.OWins++
			case game.Draw:
				tally.Draws++
			}
		}

		log.Info().
			Str("pairing", pairing.Name).
			Int("x_wins", tally.XWins).
			Int("o_wins", tally.OWins).
			Int("draws", tally.Draws).
			Msg("series over")
		tallies = append(tallies, tally)
	}

	if writer != nil {
		if err := writer.WriteGameRecords(records); err != nil {
			return nil, err
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return nil, err
		}
		if err := writer.WriteTallies(tallies); err != nil {
			return nil, err
		}
		log.Info().Str("dir", writer.Dir()).Msg("results written")
	}

	return tallies, nil
}
