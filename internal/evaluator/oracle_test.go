package evaluator

import (
	"testing"

	poker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

// toOracle converts a card to the reference library's representation,
// which uses Ace=1.
func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()

	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	}

	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}

	card, err := poker.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

// TestOrderingAgainstOracle deals random showdowns and checks that
// BestHandRank orders the two hands the same way an independent
// evaluator does.
func TestOrderingAgainstOracle(t *testing.T) {
	rng := randutil.New(7)

	for i := 0; i < 500; i++ {
		d := deck.NewDeck()
		d.Shuffle(rng)

		board := d.DealN(5)
		holeA := d.DealN(2)
		holeB := d.DealN(2)

		sevenA := append(append([]deck.Card{}, holeA...), board...)
		sevenB := append(append([]deck.Card{}, holeB...), board...)

		rankA, err := BestHandRank(sevenA)
		require.NoError(t, err)
		rankB, err := BestHandRank(sevenB)
		require.NoError(t, err)

		var oracleA, oracleB [7]poker.Card
		for j := 0; j < 7; j++ {
			oracleA[j] = toOracle(t, sevenA[j])
			oracleB[j] = toOracle(t, sevenB[j])
		}
		scoreA := poker.Eval7(&oracleA)
		scoreB := poker.Eval7(&oracleB)

		oracleCmp := 0
		if scoreA > scoreB {
			oracleCmp = 1
		} else if scoreA < scoreB {
			oracleCmp = -1
		}

		require.Equal(t, oracleCmp, rankA.Compare(rankB),
			"showdown %d: %s (%s) vs %s (%s) on board %s",
			i, deck.FormatCards(holeA), rankA, deck.FormatCards(holeB), rankB,
			deck.FormatCards(board))
	}
}
