package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

func fixedWinProb(p float64) winProbFunc {
	return func(_, _ []deck.Card, _ int) (float64, error) {
		return p, nil
	}
}

func TestDecideRaisesStrongHand(t *testing.T) {
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.85)))
	state := testState()
	state.CurrentBet = 10

	d, err := b.Decide(state, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, Raise, d.Action)
	assert.GreaterOrEqual(t, d.Amount, b.cfg.Strategy.MinBet)
	assert.LessOrEqual(t, d.Amount, state.BotStack)
	assert.Equal(t, 0.85, d.WinProb)
	assert.False(t, d.Fallback)
}

func TestDecideFoldsWeakHandFacingLargeBet(t *testing.T) {
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.2)))
	state := testState()
	state.CurrentBet = 15

	d, err := b.Decide(state, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, Fold, d.Action)
	assert.Zero(t, d.Amount)
}

func TestDecideNeverFoldsWithNoBet(t *testing.T) {
	for _, p := range []float64{0.05, 0.20, 0.35, 0.60, 0.90} {
		b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(p)))
		state := testState()

		for i := 0; i < 50; i++ {
			d, err := b.Decide(state, 2, 100)
			require.NoError(t, err)
			assert.NotEqual(t, Fold, d.Action, "folded with no bet at win prob %.2f", p)
		}
	}
}

func TestDecideChecksBigBlindOption(t *testing.T) {
	// Big blind facing a limp: the bet is live but already matched.
	// The decision must come from the legal action set, and checking
	// behind with a weak hand must be allowed.
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.20)))
	state := testState()
	state.CurrentBet = 10
	state.BotCommitted = 10

	d, err := b.Decide(state, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, Check, d.Action)
	assert.Contains(t, PossibleActions(state), d.Action)

	_, err = ApplyAction(state, d.Action)
	require.NoError(t, err)
}

func TestDecideReturnsLegalActions(t *testing.T) {
	states := []DecisionState{testState()}

	facing := testState()
	facing.CurrentBet = 12
	states = append(states, facing)

	matched := testState()
	matched.CurrentBet = 10
	matched.BotCommitted = 10
	states = append(states, matched)

	for _, p := range []float64{0.10, 0.35, 0.60, 0.90} {
		b := New(WithSeed(11), WithWinProbFunc(fixedWinProb(p)))
		for _, state := range states {
			for i := 0; i < 20; i++ {
				d, err := b.Decide(state, 2, 100)
				require.NoError(t, err)
				assert.Contains(t, PossibleActions(state), d.Action,
					"win prob %.2f, to call %d", p, state.ToCall())
			}
		}
	}
}

func TestDecideCallsWhenBetIsCheap(t *testing.T) {
	// Below the normal fold threshold, but the call is a few chips into
	// a healthy pot.
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.12)))
	state := testState()
	state.Pot = 40
	state.CurrentBet = 4

	d, err := b.Decide(state, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, Call, d.Action)
}

func TestDecideFallbackOnEstimatorError(t *testing.T) {
	failing := func(_, _ []deck.Card, _ int) (float64, error) {
		return 0, errors.New("simulated estimator failure")
	}

	b := New(WithSeed(7), WithWinProbFunc(failing))

	state := testState()
	state.CurrentBet = 10
	d, err := b.Decide(state, 2, 100)
	require.NoError(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, Call, d.Action)

	state = testState()
	d, err = b.Decide(state, 2, 100)
	require.NoError(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, Check, d.Action)
}

func TestDecideValidatesState(t *testing.T) {
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.5)))
	state := testState()
	state.Hole = nil

	_, err := b.Decide(state, 2, 100)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecideDeterministicForSeed(t *testing.T) {
	run := func() []Decision {
		b := New(WithSeed(42), WithWinProbFunc(fixedWinProb(0.40)))
		var out []Decision
		for i := 0; i < 20; i++ {
			state := testState()
			d, err := b.Decide(state, 2, 100)
			require.NoError(t, err)
			d.Elapsed = 0
			out = append(out, d)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestDecideSemiBluffFrequency(t *testing.T) {
	// Drawing hand, no bet to face, late position: expect an occasional
	// raise around the configured frequency plus the position bonus.
	b := New(WithSeed(11), WithWinProbFunc(fixedWinProb(0.40)))
	state := testState()

	raises := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		d, err := b.Decide(state, 1, 100)
		require.NoError(t, err)
		if d.Action == Raise {
			raises++
		}
	}

	freq := float64(raises) / trials
	assert.Greater(t, freq, 0.10)
	assert.Less(t, freq, 0.20)
}

type captureRecorder struct {
	decisions []Decision
}

func (c *captureRecorder) RecordDecision(d Decision) {
	c.decisions = append(c.decisions, d)
}

func TestDecideRecordsDecisions(t *testing.T) {
	rec := &captureRecorder{}
	b := New(WithSeed(7), WithWinProbFunc(fixedWinProb(0.85)), WithRecorder(rec))

	state := testState()
	state.CurrentBet = 10
	_, err := b.Decide(state, 2, 100)
	require.NoError(t, err)
	_, err = b.Decide(state, 2, 100)
	require.NoError(t, err)

	require.Len(t, rec.decisions, 2)
	assert.Equal(t, Raise, rec.decisions[0].Action)
}

func TestLeafSimsClamped(t *testing.T) {
	b := New(WithSeed(7))
	cfg := b.cfg.Strategy

	assert.Equal(t, cfg.LeafSims, b.leafSims(1))
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		sims := b.leafSims(depth)
		assert.GreaterOrEqual(t, sims, cfg.LeafSimsMin)
		assert.LessOrEqual(t, sims, cfg.LeafSimsMax)
	}
}

func TestDecideRaisesPocketAcesPreflop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}

	b := New(WithSeed(9))
	state := DecisionState{
		Hole:         deck.MustParseCards("AsAh"),
		Pot:          3,
		CurrentBet:   2,
		BotCommitted: 1,
		BotStack:     99,
		OppStack:     98,
		RaiseAmount:  2,
	}

	d, err := b.Decide(state, 2, 2000)
	require.NoError(t, err)
	assert.Equal(t, Raise, d.Action)
	assert.InDelta(t, 0.85, d.WinProb, 0.05)
}

func TestDecideFoldsDeadHandOnQuadsBoard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo integration test in short mode")
	}

	// Board plays for both seats; any opponent card above a seven wins,
	// so the hand is well below the price being offered.
	b := New(WithSeed(9))
	state := DecisionState{
		Hole:        deck.MustParseCards("2c7d"),
		Community:   deck.MustParseCards("KsKhKdQsQh"),
		Pot:         20,
		CurrentBet:  16,
		BotStack:    100,
		OppStack:    100,
		RaiseAmount: 10,
	}

	d, err := b.Decide(state, 1, 4000)
	require.NoError(t, err)
	assert.Equal(t, Fold, d.Action)
}
