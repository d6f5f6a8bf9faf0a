package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

// ErrInvalidInput indicates a malformed card set: wrong count or
// duplicate cards. It signals a programming bug upstream and is never
// masked by callers.
var ErrInvalidInput = errors.New("invalid input")

// Evaluate5 classifies exactly 5 distinct cards into one of the 9 hand
// categories with full tiebreak ordering. Pure and deterministic.
func Evaluate5(cards []deck.Card) (HandRank, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("%w: evaluate5 requires exactly 5 cards, got %d", ErrInvalidInput, len(cards))
	}
	if err := deck.ValidateDistinct(cards); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return evaluate5(cards), nil
}

// evaluate5 assumes 5 distinct cards.
func evaluate5(cards []deck.Card) HandRank {
	vals := make([]int, 5)
	for i, c := range cards {
		vals[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(vals)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightTopCard(vals)

	if straightHigh != 0 && flush {
		return makeHandRank(StraightFlush, straightHigh)
	}

	// Group ranks by frequency, strongest group first.
	var counts [15]int
	for _, v := range vals {
		counts[v]++
	}
	type group struct{ freq, rank int }
	var groups []group
	for rank := 14; rank >= 2; rank-- {
		if counts[rank] > 0 {
			groups = append(groups, group{counts[rank], rank})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].freq > groups[j].freq
	})

	switch {
	case groups[0].freq == 4:
		return makeHandRank(FourOfAKind, groups[0].rank, groups[1].rank)
	case groups[0].freq == 3 && groups[1].freq == 2:
		return makeHandRank(FullHouse, groups[0].rank, groups[1].rank)
	case flush:
		return makeHandRank(Flush, vals...)
	case straightHigh != 0:
		return makeHandRank(Straight, straightHigh)
	case groups[0].freq == 3:
		return makeHandRank(ThreeOfAKind, groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].freq == 2 && groups[1].freq == 2:
		return makeHandRank(TwoPair, groups[0].rank, groups[1].rank, groups[2].rank)
	case groups[0].freq == 2:
		return makeHandRank(OnePair, groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank)
	default:
		return makeHandRank(HighCard, vals...)
	}
}

// straightTopCard returns the top card of the straight formed by the
// given rank values, or 0 if they are not a straight. Ace counts as 1
// only for the wheel A-2-3-4-5, whose top card is 5.
func straightTopCard(sortedDesc []int) int {
	for i := 1; i < len(sortedDesc); i++ {
		if sortedDesc[i-1]-sortedDesc[i] != 1 {
			// Wheel: A,5,4,3,2 sorted descending.
			if i == 1 && sortedDesc[0] == 14 && sortedDesc[1] == 5 {
				continue
			}
			return 0
		}
	}
	if sortedDesc[0] == 14 && sortedDesc[1] == 5 {
		return 5
	}
	return sortedDesc[0]
}

// BestHandRank evaluates every 5-card subset of the given 5 to 7 distinct
// cards and returns the strongest ranking found. This is the canonical
// Texas Hold'em best-hand-from-seven rule.
func BestHandRank(cards []deck.Card) (HandRank, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return 0, fmt.Errorf("%w: bestHandRank requires 5 to 7 cards, got %d", ErrInvalidInput, n)
	}
	if err := deck.ValidateDistinct(cards); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var best HandRank
	var five [5]deck.Card
	var choose func(start, k int)
	choose = func(start, k int) {
		if k == 5 {
			if rank := evaluate5(five[:]); rank > best {
				best = rank
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			five[k] = cards[i]
			choose(i+1, k+1)
		}
	}
	choose(0, 0)
	return best, nil
}

// Compare is a convenience for showdown comparison of two rankings.
// It returns 1 if a beats b, -1 if b beats a, 0 on a split.
func Compare(a, b HandRank) int {
	return a.Compare(b)
}
