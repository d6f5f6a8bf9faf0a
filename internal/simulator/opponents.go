package simulator

import (
	"fmt"
	"math/rand/v2"

	"github.com/NhatMinh0311/G02-PokerBot/internal/bot"
)

// Opponent is a scripted counterpart for self-play sessions. Act
// returns the chosen action and, for raises, the raise increment.
type Opponent interface {
	Name() string
	Act(toCall, pot, chips, bigBlind int) (bot.Action, int)
}

// NewOpponent creates a scripted opponent of the given type
func NewOpponent(opponentType string, rng *rand.Rand) (Opponent, error) {
	switch opponentType {
	case "call":
		return callOpponent{}, nil
	case "rand":
		return &randOpponent{rng: rng}, nil
	case "aggro":
		return &aggroOpponent{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown opponent type: %s", opponentType)
	}
}

// callOpponent checks when free and calls any bet
type callOpponent struct{}

func (callOpponent) Name() string { return "call" }

func (callOpponent) Act(toCall, pot, chips, bigBlind int) (bot.Action, int) {
	if toCall > 0 {
		return bot.Call, 0
	}
	return bot.Check, 0
}

// randOpponent picks uniformly among its legal actions
type randOpponent struct {
	rng *rand.Rand
}

func (*randOpponent) Name() string { return "rand" }

func (o *randOpponent) Act(toCall, pot, chips, bigBlind int) (bot.Action, int) {
	if toCall == 0 {
		if o.rng.IntN(2) == 0 {
			return bot.Check, 0
		}
		return bot.Raise, bigBlind
	}
	switch o.rng.IntN(3) {
	case 0:
		return bot.Fold, 0
	case 1:
		return bot.Call, 0
	default:
		return bot.Raise, bigBlind
	}
}

// aggroOpponent bets and raises whenever it has chips behind
type aggroOpponent struct {
	rng *rand.Rand
}

func (*aggroOpponent) Name() string { return "aggro" }

func (o *aggroOpponent) Act(toCall, pot, chips, bigBlind int) (bot.Action, int) {
	raise := 2 * bigBlind
	if chips > toCall+raise {
		return bot.Raise, raise
	}
	if toCall > 0 {
		return bot.Call, 0
	}
	return bot.Check, 0
}
