package bot

import (
	"errors"
	"fmt"
)

// ErrInvalidAction indicates an action was applied to a state whose
// legal action set does not contain it. This is an integration bug, not
// a recoverable condition.
var ErrInvalidAction = errors.New("invalid action")

// Action is one of the four betting actions
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fold":
		*a = Fold
	case "check":
		*a = Check
	case "call":
		*a = Call
	case "raise":
		*a = Raise
	default:
		return fmt.Errorf("unknown action %q", text)
	}
	return nil
}

// actor identifies which side is taking a hypothetical action during
// search. The state abstraction is bot-centric; the actor only matters
// for marking who loses on a fold.
type actor int

const (
	actorBot actor = iota
	actorOpp
)

// PossibleActions returns the legal action set for a state: with no
// outstanding bet differential the actor may check or raise; facing a
// differential the actor may fold, call, or raise. The differential is
// what matters, not the raw bet level: a big blind that has already
// matched a limp may check even though CurrentBet is nonzero. Folding
// with nothing to call is deliberately not offered.
func PossibleActions(state DecisionState) []Action {
	if state.ToCall() == 0 {
		return []Action{Check, Raise}
	}
	return []Action{Fold, Call, Raise}
}

// ApplyAction simulates the effect of an action on a copy of the state.
// The input state is never mutated, so sibling hypotheses explored from
// the same parent stay independent. Applying an action that is not in
// PossibleActions, or acting on a terminal state, fails with
// ErrInvalidAction.
func ApplyAction(state DecisionState, action Action) (DecisionState, error) {
	return applyActionAs(state, action, actorBot)
}

func applyActionAs(state DecisionState, action Action, who actor) (DecisionState, error) {
	if state.Terminal {
		return DecisionState{}, fmt.Errorf("%w: state is terminal", ErrInvalidAction)
	}
	if !legal(state, action, who) {
		return DecisionState{}, fmt.Errorf("%w: %s with %d to call", ErrInvalidAction, action, state.ToCall())
	}

	next := state.Clone()

	switch action {
	case Fold:
		next.Terminal = true
		if who == actorBot {
			next.Winner = WinnerOpp
		} else {
			next.Winner = WinnerBot
		}

	case Check:
		// No chips move.

	case Call:
		if who == actorBot {
			pay := next.ToCall()
			if pay > next.BotStack {
				pay = next.BotStack
			}
			next.BotStack -= pay
			next.BotCommitted += pay
			next.Pot += pay
		} else {
			// The snapshot does not track the opponent's round
			// commitment, so an opponent call is approximated as
			// matching the full outstanding bet.
			pay := next.CurrentBet
			if pay > next.OppStack {
				pay = next.OppStack
			}
			next.OppStack -= pay
			next.Pot += pay
		}

	case Raise:
		newTotal := next.CurrentBet + next.RaiseAmount
		if who == actorBot {
			diff := newTotal - next.BotCommitted
			if diff < 0 {
				diff = 0
			}
			if diff > next.BotStack {
				diff = next.BotStack
			}
			next.BotStack -= diff
			next.BotCommitted += diff
			next.Pot += diff
		} else {
			diff := newTotal
			if diff > next.OppStack {
				diff = next.OppStack
			}
			next.OppStack -= diff
			next.Pot += diff
		}
		next.CurrentBet = newTotal
	}

	return next, nil
}

// possibleActionsFor is the actor-aware legality set used during
// search. The bot's side uses PossibleActions. The snapshot does not
// track the opponent's round commitment, so any live bet counts as
// outstanding for the opponent.
func possibleActionsFor(state DecisionState, who actor) []Action {
	if who == actorBot {
		return PossibleActions(state)
	}
	if state.CurrentBet == 0 {
		return []Action{Check, Raise}
	}
	return []Action{Fold, Call, Raise}
}

func legal(state DecisionState, action Action, who actor) bool {
	for _, a := range possibleActionsFor(state, who) {
		if a == action {
			return true
		}
	}
	return false
}
