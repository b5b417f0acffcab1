package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	PlayerX  string `yaml:"player-x" env:"PLAYER_X" env-default:"human"`
	PlayerO  string `yaml:"player-o" env:"PLAYER_O" env-default:"mcts"`
	Seed     uint64 `yaml:"seed" env:"SEED" env-default:"0"`
	Search   Search `yaml:"search"`
	Series   Series `yaml:"series"`
}

// Search is the budget and tuning of the MCTS player. A positive
// duration takes precedence over the iteration budget.
type Search struct {
	Iterations  int     `yaml:"iterations" env:"SEARCH_ITERATIONS" env-default:"20000"`
	DurationMS  int     `yaml:"duration-ms" env:"SEARCH_DURATION_MS" env-default:"0"`
	Goroutines  int     `yaml:"goroutines" env:"SEARCH_GOROUTINES" env-default:"1"`
	Exploration float64 `yaml:"exploration" env:"SEARCH_EXPLORATION" env-default:"1.4142135"`
}

// Duration is the wall-clock budget per move; zero means none.
func (s Search) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// Series configures benchmark runs.
type Series struct {
	Games  int    `yaml:"games" env:"SERIES_GAMES" env-default:"100"`
	Output string `yaml:"output" env:"SERIES_OUTPUT" env-default:""`
}

// MustLoad reads the YAML config at path, or just the environment when
// path is empty. It panics on a broken config file.
func MustLoad(path string) *Config {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}
	return config
}
