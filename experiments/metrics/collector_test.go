package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector_CountsEpisodesAcrossGoroutines(t *testing.T) {
	c := NewCollector()
	c.Start(4)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				c.AddEpisode()
			}
		}()
	}
	wg.Wait()

	metric := c.Complete()
	require.Equal(t, 1000, metric.Episodes)
	require.Equal(t, 4, metric.Goroutines)
	require.GreaterOrEqual(t, metric.Duration, time.Duration(0))
}

func TestCollector_StartResetsCounts(t *testing.T) {
	c := NewCollector()
	c.Start(1)
	c.AddEpisode()
	require.Equal(t, 1, c.Complete().Episodes)

	c.Start(1)
	require.Equal(t, 0, c.Complete().Episodes)
}

func TestNopCollector(t *testing.T) {
	c := NewNopCollector()
	c.Start(8)
	c.AddEpisode()
	require.Equal(t, SearchMetric{}, c.Complete())
}
