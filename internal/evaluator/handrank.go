package evaluator

// Category is the hand category, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank represents the strength of a best 5-card hand as a totally
// ordered value: the category in the top bits, then up to five tiebreak
// ranks packed as nibbles, most significant first. Natural integer order
// on HandRank matches hand order, so a higher category always wins and
// same-category hands compare by tiebreaks left to right.
type HandRank uint32

const tiebreakBits = 20 // five 4-bit rank nibbles

func makeHandRank(category Category, tiebreaks ...int) HandRank {
	r := HandRank(category) << tiebreakBits
	shift := tiebreakBits - 4
	for _, tb := range tiebreaks {
		r |= HandRank(tb) << shift
		shift -= 4
	}
	return r
}

// Category returns the hand category
func (h HandRank) Category() Category {
	return Category(h >> tiebreakBits)
}

// Tiebreaks returns the packed tiebreak ranks, most significant first.
// Trailing zero nibbles (unused tiebreak slots) are omitted.
func (h HandRank) Tiebreaks() []int {
	var tbs []int
	for shift := tiebreakBits - 4; shift >= 0; shift -= 4 {
		tb := int(h>>shift) & 0xF
		if tb == 0 {
			break
		}
		tbs = append(tbs, tb)
	}
	return tbs
}

// Compare returns 1 if h is stronger than other, -1 if weaker, 0 on a tie
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h > other:
		return 1
	case h < other:
		return -1
	default:
		return 0
	}
}

// String returns the readable name of the hand, e.g. "Full House"
func (h HandRank) String() string {
	return h.Category().String()
}
