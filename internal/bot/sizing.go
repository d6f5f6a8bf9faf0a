package bot

import "math/rand/v2"

// sizeBand maps a win probability range to a pot-fraction range.
type sizeBand struct {
	minWinProb float64
	lo, hi     float64
}

// Sizing bands, strongest first. Sub-0.45 bluffs use the same fractions
// as medium-strength value bets so sizing alone does not leak strength.
var sizeBands = []sizeBand{
	{0.85, 0.70, 1.00},
	{0.70, 0.60, 0.75},
	{0.55, 0.40, 0.60},
	{0.45, 0.25, 0.40},
	{0.00, 0.40, 0.60},
}

// SizeBet picks a bet amount as a fraction of the pot, scaled by hand
// strength, jittered within the band so the sizing is not a fixed tell.
// The result is floored at the configured minimum bet and capped by the
// bot's remaining stack.
func SizeBet(cfg Config, state DecisionState, winProb float64, rng *rand.Rand) int {
	var band sizeBand
	for _, b := range sizeBands {
		if winProb >= b.minWinProb {
			band = b
			break
		}
	}

	frac := band.lo + rng.Float64()*(band.hi-band.lo)
	amount := int(float64(state.Pot) * frac)

	if amount < cfg.Strategy.MinBet {
		amount = cfg.Strategy.MinBet
	}
	if amount > state.BotStack {
		amount = state.BotStack
	}
	return amount
}
