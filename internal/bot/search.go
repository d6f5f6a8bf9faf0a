package bot

import (
	"math"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

// winProbFunc estimates the probability of winning the hand from the
// given hole and community cards using the given simulation budget.
type winProbFunc func(hole, community []deck.Card, sims int) (float64, error)

// searcher runs a bounded minimax with alpha-beta pruning over the
// action abstraction. The opponent is modelled as an adversary who
// always steers toward the bot's worst outcome.
type searcher struct {
	cfg      Config
	winProb  winProbFunc
	leafSims int
}

// search returns the heuristic value of a state from the bot's
// perspective. Maximizing plies are the bot's turns, minimizing plies
// the opponent's. Depth counts remaining plies.
func (s *searcher) search(state DecisionState, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	if state.Terminal || depth <= 0 {
		return s.evaluate(state)
	}

	who := actorOpp
	if maximizing {
		who = actorBot
	}

	if maximizing {
		best := math.Inf(-1)
		for _, action := range possibleActionsFor(state, who) {
			next, err := applyActionAs(state, action, who)
			if err != nil {
				return 0, err
			}
			val, err := s.search(next, depth-1, alpha, beta, false)
			if err != nil {
				return 0, err
			}
			if val > best {
				best = val
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best, nil
	}

	worst := math.Inf(1)
	for _, action := range possibleActionsFor(state, who) {
		next, err := applyActionAs(state, action, who)
		if err != nil {
			return 0, err
		}
		val, err := s.search(next, depth-1, alpha, beta, true)
		if err != nil {
			return 0, err
		}
		if val < worst {
			worst = val
		}
		if worst < beta {
			beta = worst
		}
		if beta <= alpha {
			break
		}
	}
	return worst, nil
}

// evaluate scores a leaf state. The score blends win probability, the
// normalized expected value of continuing, and the bot's share of the
// chips in play, minus a risk penalty for weak hands in bloated pots.
// Terminal states use a settled win probability instead of sampling.
func (s *searcher) evaluate(state DecisionState) (float64, error) {
	var winProb float64
	switch {
	case state.Terminal && state.Winner == WinnerBot:
		winProb = 1
	case state.Terminal && state.Winner == WinnerOpp:
		winProb = 0
	default:
		var err error
		winProb, err = s.winProb(state.Hole, state.Community, s.leafSims)
		if err != nil {
			return 0, err
		}
	}
	return s.score(state, winProb), nil
}

func (s *searcher) score(state DecisionState, winProb float64) float64 {
	cfg := s.cfg.Strategy
	pot := float64(state.Pot)
	toCall := float64(state.ToCall())
	raise := float64(state.RaiseAmount)

	// If we win we collect the pot plus what we put in to continue; if
	// we lose, that continuation cost is gone.
	evCall := winProb*(pot+toCall) - (1-winProb)*toCall
	evRaise := winProb*(pot+toCall+raise) - (1-winProb)*(toCall+raise)
	evBest := math.Max(evCall, evRaise)

	bankroll := 0.0
	if total := state.TotalChips(); total > 0 {
		bankroll = float64(state.BotStack) / float64(total)
	}

	score := cfg.WinProbWeight*winProb +
		cfg.PotValueWeight*evBest/(pot+1) +
		cfg.BankrollWeight*bankroll

	if state.Pot > cfg.LargePotThreshold && winProb < cfg.LowWinProbThreshold {
		score -= cfg.RiskPenaltyLargePot
	}
	return score
}
