package metrics

import (
	"sync/atomic"
	"time"

	"tictactoe/game"
)

// SearchMetric describes a single move search.
type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Episodes   int
}

// MoveMetric is a SearchMetric tagged with its place in a game.
type MoveMetric struct {
	Step  int
	Mover game.Cell
	SearchMetric
}

// GameMetric describes one finished game.
type GameMetric struct {
	Result    game.Result
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Collector gathers statistics from a concurrent search. Implementations
// must be safe for use from multiple search goroutines.
type Collector interface {
	Start(goroutines int)
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	episodes   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines int) {
	c.goroutines = goroutines
	c.startTime = time.Now()
	c.episodes.Store(0)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: c.goroutines,
		Duration:   time.Since(c.startTime),
		Episodes:   int(c.episodes.Load()),
	}
}

type nopCollector struct{}

// NewNopCollector returns a collector that records nothing, for
// searches that do not need metrics.
func NewNopCollector() Collector {
	return nopCollector{}
}

func (nopCollector) Start(int)              {}
func (nopCollector) AddEpisode()            {}
func (nopCollector) Complete() SearchMetric { return SearchMetric{} }
