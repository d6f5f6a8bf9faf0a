package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

func TestEvaluate5Categories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{"Royal Flush", "AsKsQsJsTs", StraightFlush},
		{"Steel Wheel", "5h4h3h2hAh", StraightFlush},
		{"Four of a Kind", "AsAhAdAcKs", FourOfAKind},
		{"Full House", "AsAhAdKsKh", FullHouse},
		{"Flush", "AsKsQs8s6s", Flush},
		{"Broadway Straight", "AsKhQdJcTs", Straight},
		{"Wheel Straight", "Ah2s3d4c5h", Straight},
		{"Three of a Kind", "AsAhAdKs9c", ThreeOfAKind},
		{"Two Pair", "AsAhKdKs9c", TwoPair},
		{"One Pair", "AsAhKdQs9c", OnePair},
		{"High Card", "AsKhQd9s7c", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, err := Evaluate5(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rank.Category())
		})
	}
}

func TestEvaluate5InvalidInput(t *testing.T) {
	_, err := Evaluate5(deck.MustParseCards("AsKs"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Evaluate5(deck.MustParseCards("AsKsQsJsTs9h"))
	require.ErrorIs(t, err, ErrInvalidInput)

	// Duplicate card
	_, err = Evaluate5(deck.MustParseCards("AsAsQsJsTs"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStraightTopCards(t *testing.T) {
	wheel, err := Evaluate5(deck.MustParseCards("Ah2s3d4c5h"))
	require.NoError(t, err)
	require.Equal(t, Straight, wheel.Category())
	assert.Equal(t, []int{5}, wheel.Tiebreaks(), "wheel straight tops out at 5")

	sixHigh, err := Evaluate5(deck.MustParseCards("2s3d4c5h6s"))
	require.NoError(t, err)
	require.Equal(t, Straight, sixHigh.Category())
	assert.Equal(t, 1, sixHigh.Compare(wheel), "6-high straight beats the wheel")

	broadway, err := Evaluate5(deck.MustParseCards("AsKhQdJcTs"))
	require.NoError(t, err)
	assert.Equal(t, []int{14}, broadway.Tiebreaks())

	// A-K-Q-J-9 is not a straight, and neither is Q-K-A-2-3
	notStraight, err := Evaluate5(deck.MustParseCards("AsKhQdJc9s"))
	require.NoError(t, err)
	assert.Equal(t, HighCard, notStraight.Category())

	wrapAround, err := Evaluate5(deck.MustParseCards("QsKhAd2c3s"))
	require.NoError(t, err)
	assert.Equal(t, HighCard, wrapAround.Category())
}

func TestCategoryOrdering(t *testing.T) {
	// Weakest representative of each category still beats the strongest
	// representative of the category below.
	ladder := []string{
		"AsKhQd9s7c", // high card, ace high
		"2s2hKdQs9c", // pair of twos
		"2s2h3d3cKs", // twos and threes
		"2s2h2dKsQc", // trip twos
		"Ah2s3d4c5h", // wheel straight
		"2h3h4h5h7h", // seven-high flush
		"2s2h2d3c3s", // twos full of threes
		"2s2h2d2cQs", // quad twos
		"5h4h3h2hAh", // steel wheel
	}

	ranks := make([]HandRank, len(ladder))
	for i, s := range ladder {
		rank, err := Evaluate5(deck.MustParseCards(s))
		require.NoError(t, err)
		ranks[i] = rank
		assert.Equal(t, Category(i), rank.Category())
	}

	for i := 1; i < len(ranks); i++ {
		assert.Equal(t, 1, ranks[i].Compare(ranks[i-1]),
			"%s should beat %s", ranks[i], ranks[i-1])
	}
}

func TestTiebreaks(t *testing.T) {
	tests := []struct {
		name             string
		stronger, weaker string
	}{
		{"quad rank", "3s3h3d3c2s", "2s2h2d2cAs"},
		{"quad kicker", "3s3h3d3cAs", "3s3h3d3cKs"},
		{"boat trips", "3s3h3d2c2s", "2s2h2dAcAs"},
		{"boat pair", "QsQhQdJcJs", "QsQhQdTcTs"},
		{"flush high", "Ah9h7h5h3h", "KhQhJh9h7h"},
		{"flush kicker", "Ah9h7h5h4h", "Ah9h7h5h3h"},
		{"two pair high", "AsAh2d2cQs", "KsKhQdQcAs"},
		{"two pair low", "AsAh3d3c2s", "AsAh2d2cKs"},
		{"two pair kicker", "AsAh2d2cQs", "AsAh2d2cJs"},
		{"pair rank", "3s3hAdKcQs", "2s2hAdKcQs"},
		{"pair kicker", "AsAh7d4c3s", "AsAh7d4c2s"},
		{"high card run", "AsKhQd9s8c", "AsKhQd9s7c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Evaluate5(deck.MustParseCards(tt.stronger))
			require.NoError(t, err)
			b, err := Evaluate5(deck.MustParseCards(tt.weaker))
			require.NoError(t, err)
			assert.Equal(t, Category(a>>tiebreakBits), Category(b>>tiebreakBits))
			assert.Equal(t, 1, a.Compare(b))
			assert.Equal(t, -1, b.Compare(a))
		})
	}
}

func TestBestHandRank(t *testing.T) {
	// Board alone is a royal flush: every hole hand reports it identically.
	board := deck.MustParseCards("AcKcQcJcTc")

	a, err := BestHandRank(append(deck.MustParseCards("2s7h"), board...))
	require.NoError(t, err)
	b, err := BestHandRank(append(deck.MustParseCards("AsAh"), board...))
	require.NoError(t, err)

	assert.Equal(t, StraightFlush, a.Category())
	assert.Equal(t, []int{14}, a.Tiebreaks())
	assert.Equal(t, 0, a.Compare(b), "board royal flush plays for both hands")

	// Seven cards where the best five are not a prefix.
	rank, err := BestHandRank(deck.MustParseCards("2s2h9c9d9hKsKh"))
	require.NoError(t, err)
	assert.Equal(t, FullHouse, rank.Category())
	assert.Equal(t, []int{9, 13}, rank.Tiebreaks(), "nines full of kings")
}

func TestBestHandRankInvalidInput(t *testing.T) {
	_, err := BestHandRank(deck.MustParseCards("AsKsQsJs"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = BestHandRank(deck.MustParseCards("AsKsQsJsTs9s8s7s"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = BestHandRank(deck.MustParseCards("AsAsQsJsTs9s8s"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBestHandRankMatchesBruteForce(t *testing.T) {
	// BestHandRank over 7 cards must equal the max Evaluate5 over all
	// C(7,5)=21 subsets.
	samples := []string{
		"As2h9c9dKh3s7c",
		"5h4h3h2hAh6s6d",
		"TsTdThTc2s3s4s",
		"JdQd9h8c7sKdAd",
		"2c4d6h8sThQcAs",
	}

	for _, s := range samples {
		cards := deck.MustParseCards(s)
		want := HandRank(0)
		var five [5]deck.Card
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 4; j++ {
				for k := j + 1; k < 5; k++ {
					for l := k + 1; l < 6; l++ {
						for m := l + 1; m < 7; m++ {
							five[0], five[1], five[2], five[3], five[4] =
								cards[i], cards[j], cards[k], cards[l], cards[m]
							rank, err := Evaluate5(five[:])
							require.NoError(t, err)
							if rank > want {
								want = rank
							}
						}
					}
				}
			}
		}

		got, err := BestHandRank(cards)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cards %s", s)
	}
}
