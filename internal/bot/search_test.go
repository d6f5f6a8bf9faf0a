package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

func testSearcher(winProb winProbFunc) *searcher {
	return &searcher{cfg: DefaultConfig(), winProb: winProb, leafSims: 100}
}

func TestScoreExpectedValueTerms(t *testing.T) {
	// The win branch collects the pot plus the chips put in to
	// continue; the loss branch forfeits them.
	s := testSearcher(nil)
	state := testState()
	state.Pot = 30
	state.CurrentBet = 10

	evCall := 0.6*(30+10) - 0.4*10
	evRaise := 0.6*(30+10+10) - 0.4*(10+10)
	require.Greater(t, evRaise, evCall)
	want := 0.68*0.6 + 0.25*evRaise/31 + 0.07*0.5

	assert.InDelta(t, want, s.score(state, 0.6), 1e-9)
}

func TestScoreRiskPenaltyWeakHandLargePot(t *testing.T) {
	s := testSearcher(nil)
	state := testState()
	state.Pot = 40
	state.CurrentBet = 10

	evCall := 0.3*(40+10) - 0.7*10
	want := 0.68*0.3 + 0.25*evCall/41 + 0.07*0.5 - 0.15

	assert.InDelta(t, want, s.score(state, 0.3), 1e-9)
}

func TestEvaluateTerminalSkipsSampling(t *testing.T) {
	s := testSearcher(func(_, _ []deck.Card, _ int) (float64, error) {
		return 0, errors.New("should not sample terminal states")
	})

	state := testState()
	state.Terminal = true
	state.Winner = WinnerBot
	won, err := s.evaluate(state)
	require.NoError(t, err)

	state.Winner = WinnerOpp
	lost, err := s.evaluate(state)
	require.NoError(t, err)

	assert.Greater(t, won, lost)
}
