package equity

import (
	rand "math/rand/v2"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

const (
	// DefaultWorkers bounds the parallel worker pool. The effective pool
	// is min(DefaultWorkers, runtime.NumCPU()).
	DefaultWorkers = 4

	// DefaultParallelThreshold is the simulation count below which the
	// goroutine fan-out costs more than it saves.
	DefaultParallelThreshold = 500
)

// Estimator bundles the win-probability configuration so callers can
// carry one instance instead of threading worker counts through every
// call site.
type Estimator struct {
	Workers           int
	ParallelThreshold int
}

// NewEstimator returns an Estimator with the default worker pool
func NewEstimator() *Estimator {
	return &Estimator{
		Workers:           DefaultWorkers,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// WinProbability estimates the chance of winning at showdown, choosing
// the parallel implementation when the simulation budget is large enough
// to pay for the fan-out.
func (e *Estimator) WinProbability(hole, board []deck.Card, sims int, rng *rand.Rand) (float64, error) {
	if sims >= e.ParallelThreshold {
		return EstimateParallel(hole, board, sims, e.Workers, rng)
	}
	return Estimate(hole, board, sims, rng)
}
