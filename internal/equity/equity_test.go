package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

func TestEstimateInvalidInput(t *testing.T) {
	rng := randutil.New(1)

	_, err := Estimate(deck.MustParseCards("As"), nil, 100, rng)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Estimate(deck.MustParseCards("AsKh"), deck.MustParseCards("2c3c4c5c6c7c"), 100, rng)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Estimate(deck.MustParseCards("AsKh"), nil, 0, rng)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Hole card duplicated on the board
	_, err = Estimate(deck.MustParseCards("AsKh"), deck.MustParseCards("As2c3c"), 100, rng)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEstimateBounds(t *testing.T) {
	rng := randutil.New(2)

	holes := []string{"2c7d", "AsAh", "KdQd", "9c9d"}
	boards := []string{"", "2h3h4h", "2h3h4h5s", "2h3h4h5s6d"}

	for _, h := range holes {
		for _, b := range boards {
			hole := deck.MustParseCards(h)
			var board []deck.Card
			if b != "" {
				board = deck.MustParseCards(b)
			}
			if deck.ValidateDistinct(hole, board) != nil {
				continue
			}

			p, err := Estimate(hole, board, 200, rng)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0, "hole %s board %s", h, b)
			assert.LessOrEqual(t, p, 1.0, "hole %s board %s", h, b)
		}
	}
}

// Pocket aces against a random hand is the textbook heads-up equity
// benchmark: roughly 85% preflop.
func TestPocketAcesPreflopEquity(t *testing.T) {
	rng := randutil.New(3)

	p, err := Estimate(deck.MustParseCards("AsAh"), nil, 4000, rng)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, p, 0.03)
}

func TestDominatedHandHasLowEquity(t *testing.T) {
	rng := randutil.New(4)

	// 2♣7♦ under a board of trip kings and two queens wins almost never:
	// it plays the board, so most showdowns are ties.
	p, err := Estimate(deck.MustParseCards("2c7d"), deck.MustParseCards("KsKhKdQsQh"), 2000, rng)
	require.NoError(t, err)
	assert.Less(t, p, 0.50)
	assert.Greater(t, p, 0.40, "board-playing showdowns tie, counting half")
}

// Over uniformly random hole cards the average equity against a random
// opponent must sit at one half.
func TestEstimateSymmetry(t *testing.T) {
	rng := randutil.New(5)

	total := 0.0
	const hands = 50
	for i := 0; i < hands; i++ {
		d := deck.NewDeck()
		d.Shuffle(rng)
		hole := d.DealN(2)

		p, err := Estimate(hole, nil, 400, rng)
		require.NoError(t, err)
		total += p
	}

	assert.InDelta(t, 0.5, total/hands, 0.04)
}

func TestParallelMatchesSequential(t *testing.T) {
	hole := deck.MustParseCards("KsQs")
	board := deck.MustParseCards("Js2h7d")

	const runs = 20
	const sims = 1000

	var seqMean, parMean float64
	for i := 0; i < runs; i++ {
		seq, err := Estimate(hole, board, sims, randutil.New(int64(100+i)))
		require.NoError(t, err)
		par, err := EstimateParallel(hole, board, sims, 4, randutil.New(int64(200+i)))
		require.NoError(t, err)
		seqMean += seq
		parMean += par
	}
	seqMean /= runs
	parMean /= runs

	// Same expected value; only sampling noise differs.
	assert.InDelta(t, seqMean, parMean, 0.02)
}

func TestParallelDeterministicForSeed(t *testing.T) {
	hole := deck.MustParseCards("AdKd")
	board := deck.MustParseCards("Qd2s9h")

	a, err := EstimateParallel(hole, board, 2000, 4, randutil.New(11))
	require.NoError(t, err)
	b, err := EstimateParallel(hole, board, 2000, 4, randutil.New(11))
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed and worker count must reproduce")
}

func TestEstimatorSelectsImplementation(t *testing.T) {
	e := NewEstimator()
	require.Equal(t, DefaultWorkers, e.Workers)

	hole := deck.MustParseCards("ThTd")

	p, err := e.WinProbability(hole, nil, 100, randutil.New(12))
	require.NoError(t, err)
	assert.Greater(t, p, 0.5, "pocket tens are a favourite against a random hand")

	p, err = e.WinProbability(hole, nil, 1000, randutil.New(12))
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
}
