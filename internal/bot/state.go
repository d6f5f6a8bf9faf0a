package bot

import (
	"errors"
	"fmt"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

// ErrInvalidState indicates a decision state snapshot that violates its
// own invariants, such as negative chip amounts or duplicate cards.
var ErrInvalidState = errors.New("invalid state")

// Winner tags the outcome of a terminal state
type Winner int

const (
	WinnerNone Winner = iota
	WinnerBot
	WinnerOpp
)

// DecisionState is a compact snapshot of a betting situation, sufficient
// to simulate the effect of candidate actions without touching real game
// state. All chip amounts are in the table's smallest currency unit. It
// is created once per decision point and copied whenever a hypothetical
// action is explored.
type DecisionState struct {
	// Hole holds the bot's two private cards.
	Hole []deck.Card
	// Community holds the 0, 3, 4 or 5 revealed shared cards.
	Community []deck.Card

	// Pot is the cumulative total of all commitments this hand.
	Pot int
	// CurrentBet is the outstanding total bet for this betting round.
	CurrentBet int
	// BotCommitted is what the bot has already put in this round.
	BotCommitted int
	// BotStack and OppStack are the remaining chips behind.
	BotStack int
	OppStack int
	// RaiseAmount is the fixed increment used for hypothetical raises
	// inside the search.
	RaiseAmount int

	// EarlyPosition is true when the bot acts first post-flop (small
	// blind in heads-up play); it tightens thresholds slightly.
	EarlyPosition bool

	// Terminal marks a state where the hand is decided, with Winner
	// indicating who took it.
	Terminal bool
	Winner   Winner
}

// Clone returns a deep copy; card slices are copied so no branch of the
// search can observe another branch's mutations.
func (s DecisionState) Clone() DecisionState {
	next := s
	next.Hole = append([]deck.Card(nil), s.Hole...)
	next.Community = append([]deck.Card(nil), s.Community...)
	return next
}

// ToCall returns the outstanding amount the bot must put in to call
func (s DecisionState) ToCall() int {
	toCall := s.CurrentBet - s.BotCommitted
	if toCall < 0 {
		return 0
	}
	return toCall
}

// TotalChips returns all chips in play behind both stacks
func (s DecisionState) TotalChips() int {
	return s.BotStack + s.OppStack
}

// Validate checks the snapshot's invariants
func (s DecisionState) Validate() error {
	if len(s.Hole) != 2 {
		return fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidState, len(s.Hole))
	}
	switch len(s.Community) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("%w: community must have 0, 3, 4 or 5 cards, got %d", ErrInvalidState, len(s.Community))
	}
	if err := deck.ValidateDistinct(s.Hole, s.Community); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if s.Pot < 0 || s.CurrentBet < 0 || s.BotCommitted < 0 || s.BotStack < 0 || s.OppStack < 0 {
		return fmt.Errorf("%w: negative chip amount", ErrInvalidState)
	}
	if s.RaiseAmount < 1 {
		return fmt.Errorf("%w: raise amount must be at least 1, got %d", ErrInvalidState, s.RaiseAmount)
	}
	return nil
}
