package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var profile = termenv.ColorProfile()

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	series := flag.Bool("series", false, "play a benchmark series instead of a single match")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	if *series {
		err = runSeries(ctx, cfg)
	} else {
		err = runMatch(ctx, cfg)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nmatch abandoned")
			return
		}
		log.Fatal().Err(err).Msg("run failed")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

func runMatch(ctx context.Context, cfg *config.Config) error {
	input := engine.ReaderProvider(os.Stdin, os.Stdout)
	x, err := buildStrategy(cfg.PlayerX, cfg, input)
	if err != nil {
		return err
	}
	o, err := buildStrategy(cfg.PlayerO, cfg, input)
	if err != nil {
		return err
	}

	printBoard(game.Board{})
	match := engine.NewMatch(x, o, engine.WithPlyCallback(func(_ game.Cell, _ game.Move, b game.Board) {
		printBoard(b)
	}))
	result, err := match.Play(ctx)
	if err != nil {
		return err
	}

	fmt.Println(termenv.String(result.String()).Bold().String())
	return nil
}

func runSeries(ctx context.Context, cfg *config.Config) error {
	if cfg.PlayerX == "human" || cfg.PlayerO == "human" {
		return errors.New("series mode needs two automated players")
	}

	pairing := experiments.Pairing{
		Name: fmt.Sprintf("%s-vs-%s", cfg.PlayerX, cfg.PlayerO),
		X:    strategyFactory(cfg.PlayerX, cfg),
		O:    strategyFactory(cfg.PlayerO, cfg),
	}

	var writer *metrics.Writer
	if cfg.Series.Output != "" {
		var err error
		if writer, err = metrics.NewWriter(cfg.Series.Output); err != nil {
			return err
		}
	}

	tallies, err := experiments.RunSeries(ctx, []experiments.Pairing{pairing}, cfg.Series.Games, writer)
	if err != nil {
		return err
	}
	for _, tally := range tallies {
		fmt.Printf("%s over %d games: X %d, O %d, draws %d\n",
			tally.Pairing, tally.Games, tally.XWins, tally.OWins, tally.Draws)
	}
	return nil
}

func strategyFactory(kind string, cfg *config.Config) func() searcher.Strategy {
	return func() searcher.Strategy {
		s, err := buildStrategy(kind, cfg, nil)
		if err != nil {
			panic(err)
		}
		return s
	}
}

func buildStrategy(kind string, cfg *config.Config, input engine.InputProvider) (searcher.Strategy, error) {
	switch kind {
	case "human":
		return engine.NewHuman(input), nil
	case "random":
		return searcher.NewRandom(cfg.Seed), nil
	case "alphabeta":
		return searcher.NewAlphaBeta(), nil
	case "mcts":
		options := []searcher.Option{
			searcher.WithGoroutines(cfg.Search.Goroutines),
			searcher.WithExploration(cfg.Search.Exploration),
			searcher.WithSeed(cfg.Seed),
		}
		if cfg.Search.Duration() > 0 {
			options = append(options, searcher.WithDuration(cfg.Search.Duration()))
		} else {
			options = append(options, searcher.WithIterations(cfg.Search.Iterations))
		}
		return searcher.NewMCTS(options...), nil
	case "qlearning":
		return searcher.NewQLearning(searcher.WithQSeed(cfg.Seed)), nil
	default:
		return nil, fmt.Errorf("unknown player kind %q", kind)
	}
}

func printBoard(b game.Board) {
	fmt.Println()
	for row := 0; row < game.Size; row++ {
		fmt.Print("  ")
		for col := 0; col < game.Size; col++ {
			fmt.Print(renderCell(b[row*game.Size+col]), " ")
		}
		fmt.Println()
	}
	fmt.Println()
}

func renderCell(c game.Cell) string {
	s := termenv.String(c.String())
	switch c {
	case game.X:
		return s.Foreground(profile.Color("1")).Bold().String()
	case game.O:
		return s.Foreground(profile.Color("4")).Bold().String()
	default:
		return s.Faint().String()
	}
}
