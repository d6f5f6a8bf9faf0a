// Package equity estimates win probability for a heads-up hold'em hand
// by Monte Carlo simulation against a uniformly random opponent hand.
package equity

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/evaluator"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

var (
	// ErrInvalidInput indicates malformed hole or board cards.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientCards indicates too few unknown cards remain to deal
	// an opponent hand and complete the board. Callers should fall back
	// to a default action rather than crash.
	ErrInsufficientCards = errors.New("insufficient cards")
)

const opponentHoleCards = 2

// Estimate runs sims sequential Monte Carlo samples and returns the
// fraction of showdowns won, counting ties as half a win. Each sample
// draws a random opponent hand and board completion without replacement
// from the cards not already known.
func Estimate(hole, board []deck.Card, sims int, rng *rand.Rand) (float64, error) {
	remaining, err := prepare(hole, board, sims)
	if err != nil {
		return 0, err
	}
	wins := sample(hole, board, remaining, sims, rng)
	return wins / float64(sims), nil
}

// EstimateParallel partitions sims across workers, each simulating on its
// own deck copy with an independently seeded generator, and joins the
// partial win counts once every worker has finished. The result has the
// same expected value as Estimate.
func EstimateParallel(hole, board []deck.Card, sims, workers int, rng *rand.Rand) (float64, error) {
	remaining, err := prepare(hole, board, sims)
	if err != nil {
		return 0, err
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}
	if n := runtime.NumCPU(); workers > n {
		workers = n
	}
	if workers > sims {
		workers = sims
	}

	perWorker := sims / workers
	remainder := sims % workers

	partial := make([]float64, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		batch := perWorker
		if w < remainder {
			batch++
		}
		seed := rng.Int64()
		g.Go(func() error {
			workerRng := randutil.New(seed)
			workerDeck := append([]deck.Card(nil), remaining...)
			partial[w] = sample(hole, board, workerDeck, batch, workerRng)
			return nil
		})
	}
	// Workers never fail; Wait is the join barrier.
	_ = g.Wait()

	var wins float64
	for _, p := range partial {
		wins += p
	}
	return wins / float64(sims), nil
}

// prepare validates inputs and returns the unknown remainder of the deck.
func prepare(hole, board []deck.Card, sims int) ([]deck.Card, error) {
	if len(hole) != opponentHoleCards {
		return nil, fmt.Errorf("%w: need exactly 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("%w: board has %d cards, max 5", ErrInvalidInput, len(board))
	}
	if sims < 1 {
		return nil, fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidInput, sims)
	}
	if err := deck.ValidateDistinct(hole, board); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	remaining := deck.NewDeckExcluding(hole, board).Cards()
	needed := opponentHoleCards + (5 - len(board))
	if len(remaining) < needed {
		return nil, fmt.Errorf("%w: %d unknown cards remain, need %d",
			ErrInsufficientCards, len(remaining), needed)
	}
	return append([]deck.Card(nil), remaining...), nil
}

// sample runs sims showdowns drawing from scratch, which it reorders in
// place, and returns the accumulated win count.
func sample(hole, board []deck.Card, scratch []deck.Card, sims int, rng *rand.Rand) float64 {
	draw := opponentHoleCards + (5 - len(board))

	botHand := make([]deck.Card, 7)
	oppHand := make([]deck.Card, 7)
	copy(botHand, hole)

	wins := 0.0
	for i := 0; i < sims; i++ {
		// Partial Fisher-Yates: only the first draw cards need shuffling.
		for j := 0; j < draw; j++ {
			k := j + rng.IntN(len(scratch)-j)
			scratch[j], scratch[k] = scratch[k], scratch[j]
		}

		copy(oppHand, scratch[:opponentHoleCards])
		copy(botHand[2:], board)
		copy(oppHand[2:], board)
		copy(botHand[2+len(board):], scratch[opponentHoleCards:draw])
		copy(oppHand[2+len(board):], scratch[opponentHoleCards:draw])

		botRank, err := evaluator.BestHandRank(botHand)
		if err != nil {
			continue
		}
		oppRank, err := evaluator.BestHandRank(oppHand)
		if err != nil {
			continue
		}

		switch botRank.Compare(oppRank) {
		case 1:
			wins++
		case 0:
			wins += 0.5
		}
	}
	return wins
}
