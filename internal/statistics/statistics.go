// Package statistics aggregates decision outcomes for reporting. A
// Collector plugs into the bot as its decision recorder and answers
// summary queries at the end of a session.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/NhatMinh0311/G02-PokerBot/internal/bot"
)

// ActionCounts tallies decisions per action type
type ActionCounts struct {
	Folds  int
	Checks int
	Calls  int
	Raises int
}

// Total returns the number of decisions across all actions
func (c ActionCounts) Total() int {
	return c.Folds + c.Checks + c.Calls + c.Raises
}

// Collector accumulates decision statistics. It is safe for concurrent
// use so one collector can sit behind several bots.
type Collector struct {
	mu sync.Mutex

	actions   ActionCounts
	fallbacks int

	// Win probability moments; fallback decisions carry no estimate
	// and are excluded.
	winProbSum  float64
	winProbSum2 float64
	winProbN    int
	winProbs    []float64 // stored for percentile queries

	latencySum time.Duration
	latencies  []time.Duration
}

// NewCollector returns an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// RecordDecision implements bot.Recorder
func (c *Collector) RecordDecision(d bot.Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch d.Action {
	case bot.Fold:
		c.actions.Folds++
	case bot.Check:
		c.actions.Checks++
	case bot.Call:
		c.actions.Calls++
	case bot.Raise:
		c.actions.Raises++
	}

	if d.Fallback {
		c.fallbacks++
	} else {
		c.winProbSum += d.WinProb
		c.winProbSum2 += d.WinProb * d.WinProb
		c.winProbN++
		c.winProbs = append(c.winProbs, d.WinProb)
	}

	c.latencySum += d.Elapsed
	c.latencies = append(c.latencies, d.Elapsed)
}

// Actions returns the per-action tallies
func (c *Collector) Actions() ActionCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actions
}

// Fallbacks returns how many decisions used the degraded policy
func (c *Collector) Fallbacks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallbacks
}

// MeanWinProb returns the arithmetic mean of recorded win probabilities
func (c *Collector) MeanWinProb() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meanWinProbLocked()
}

func (c *Collector) meanWinProbLocked() float64 {
	if c.winProbN == 0 {
		return 0
	}
	return c.winProbSum / float64(c.winProbN)
}

// StdDevWinProb returns the sample standard deviation of win
// probabilities
func (c *Collector) StdDevWinProb() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stdDevWinProbLocked()
}

func (c *Collector) stdDevWinProbLocked() float64 {
	if c.winProbN < 2 {
		return 0
	}
	mean := c.winProbSum / float64(c.winProbN)
	variance := (c.winProbSum2 - float64(c.winProbN)*mean*mean) / float64(c.winProbN-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// WinProbPercentile returns the value at the given percentile (0.0 to
// 1.0) of recorded win probabilities, with linear interpolation.
func (c *Collector) WinProbPercentile(p float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.winProbs) == 0 {
		return 0
	}
	sorted := make([]float64, len(c.winProbs))
	copy(sorted, c.winProbs)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// MeanLatency returns the average decision latency
func (c *Collector) MeanLatency() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meanLatencyLocked()
}

func (c *Collector) meanLatencyLocked() time.Duration {
	if len(c.latencies) == 0 {
		return 0
	}
	return c.latencySum / time.Duration(len(c.latencies))
}

// MaxLatency returns the slowest recorded decision
func (c *Collector) MaxLatency() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxLatencyLocked()
}

func (c *Collector) maxLatencyLocked() time.Duration {
	var max time.Duration
	for _, l := range c.latencies {
		if l > max {
			max = l
		}
	}
	return max
}

// Summary is a point-in-time snapshot of the collector
type Summary struct {
	Actions       ActionCounts
	Fallbacks     int
	MeanWinProb   float64
	StdDevWinProb float64
	MeanLatency   time.Duration
	MaxLatency    time.Duration
}

// Summarize returns a consistent snapshot of all aggregates
func (c *Collector) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		Actions:       c.actions,
		Fallbacks:     c.fallbacks,
		MeanWinProb:   c.meanWinProbLocked(),
		StdDevWinProb: c.stdDevWinProbLocked(),
		MeanLatency:   c.meanLatencyLocked(),
		MaxLatency:    c.maxLatencyLocked(),
	}
}

// Validate performs consistency checks on the collected data
func (c *Collector) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.actions.Total()
	if total != len(c.latencies) {
		return fmt.Errorf("action count %d does not match latency sample count %d", total, len(c.latencies))
	}
	if c.winProbN+c.fallbacks != total {
		return fmt.Errorf("win prob samples %d plus fallbacks %d do not account for %d decisions",
			c.winProbN, c.fallbacks, total)
	}
	for _, p := range c.winProbs {
		if p < 0 || p > 1 {
			return fmt.Errorf("win probability %f out of range", p)
		}
	}
	return nil
}
