// Package simulator runs heads-up self-play sessions pitting the
// decision engine against scripted opponents. Sessions are fully
// deterministic for a given seed, which makes regressions in the
// strategy visible as changed results.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/NhatMinh0311/G02-PokerBot/internal/bot"
	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/evaluator"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Hands         int
	Opponent      string
	Seed          int64
	Depth         int
	Simulations   int
	StartingChips int
	SmallBlind    int
	BigBlind      int
	Logger        *log.Logger
	Recorder      bot.Recorder
}

// HandResult is the outcome of one simulated hand from the bot's side
type HandResult struct {
	Seed           int64
	NetChips       int
	FinalPot       int
	WentToShowdown bool
	StreetReached  string
}

// Result aggregates a full session
type Result struct {
	Hands     int
	NetChips  int
	BotWins   int
	OppWins   int
	Splits    int
	Showdowns int
	BigBlind  int
}

// NetBB returns the session result in big blinds per hand
func (r Result) NetBB() float64 {
	if r.Hands == 0 {
		return 0
	}
	return float64(r.NetChips) / float64(r.BigBlind) / float64(r.Hands)
}

// Simulator runs self-play sessions
type Simulator struct {
	config Config
}

// New creates a simulator, filling unset config fields with defaults
func New(config Config) *Simulator {
	if config.Hands == 0 {
		config.Hands = 100
	}
	if config.Opponent == "" {
		config.Opponent = "call"
	}
	if config.Depth == 0 {
		config.Depth = 2
	}
	if config.Simulations == 0 {
		config.Simulations = 300
	}
	if config.StartingChips == 0 {
		config.StartingChips = 200
	}
	if config.SmallBlind == 0 {
		config.SmallBlind = 1
	}
	if config.BigBlind == 0 {
		config.BigBlind = 2
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Recorder == nil {
		config.Recorder = bot.NopRecorder{}
	}
	return &Simulator{config: config}
}

// Run plays the configured number of hands and returns the aggregate.
// Position alternates every hand to cancel the blind disadvantage.
func (s *Simulator) Run() (Result, error) {
	logger := s.config.Logger.WithPrefix("simulator")

	oppRng := randutil.New(s.config.Seed + 1)
	opp, err := NewOpponent(s.config.Opponent, oppRng)
	if err != nil {
		return Result{}, err
	}

	b := bot.New(
		bot.WithSeed(s.config.Seed),
		bot.WithLogger(logger),
		bot.WithRecorder(s.config.Recorder),
	)

	result := Result{BigBlind: s.config.BigBlind}
	for hand := 0; hand < s.config.Hands; hand++ {
		handSeed := s.config.Seed + int64(hand)
		botFirst := hand%2 == 0

		hr, err := s.playHand(handSeed, botFirst, b, opp)
		if err != nil {
			return Result{}, fmt.Errorf("hand %d (seed %d): %w", hand+1, handSeed, err)
		}

		result.Hands++
		result.NetChips += hr.NetChips
		switch {
		case hr.NetChips > 0:
			result.BotWins++
		case hr.NetChips < 0:
			result.OppWins++
		default:
			result.Splits++
		}
		if hr.WentToShowdown {
			result.Showdowns++
		}

		logger.Debug("hand complete",
			"seed", handSeed, "net", hr.NetChips,
			"street", hr.StreetReached, "showdown", hr.WentToShowdown)
	}

	return result, nil
}

// handState tracks the chips and cards of one hand in play. The pot and
// both stacks always sum to twice the starting chips.
type handState struct {
	botHole   []deck.Card
	oppHole   []deck.Card
	community []deck.Card

	pot      int
	botChips int
	oppChips int

	// per-street betting
	currentBet   int
	botCommitted int
	oppCommitted int

	botFirst bool
}

func (h *handState) botPay(amount int) {
	if amount > h.botChips {
		amount = h.botChips
	}
	if amount < 0 {
		amount = 0
	}
	h.botChips -= amount
	h.botCommitted += amount
	h.pot += amount
}

func (h *handState) oppPay(amount int) {
	if amount > h.oppChips {
		amount = h.oppChips
	}
	if amount < 0 {
		amount = 0
	}
	h.oppChips -= amount
	h.oppCommitted += amount
	h.pot += amount
}

var streetNames = []string{"Pre-flop", "Flop", "Turn", "River"}

func (s *Simulator) playHand(handSeed int64, botFirst bool, b *bot.Bot, opp Opponent) (HandResult, error) {
	rng := randutil.New(handSeed)
	d := deck.NewDeck()
	d.Shuffle(rng)

	h := &handState{
		botChips: s.config.StartingChips,
		oppChips: s.config.StartingChips,
		botFirst: botFirst,
	}

	h.botHole = d.DealN(2)
	h.oppHole = d.DealN(2)
	if len(h.botHole) != 2 || len(h.oppHole) != 2 {
		return HandResult{}, fmt.Errorf("short deck dealing hole cards")
	}

	// Post blinds; the first actor is the small blind.
	if botFirst {
		h.botPay(s.config.SmallBlind)
		h.oppPay(s.config.BigBlind)
	} else {
		h.oppPay(s.config.SmallBlind)
		h.botPay(s.config.BigBlind)
	}
	h.currentBet = s.config.BigBlind

	boardSizes := []int{0, 3, 4, 5}
	streetReached := streetNames[0]

	for street, size := range boardSizes {
		streetReached = streetNames[street]

		for len(h.community) < size {
			card, ok := d.Deal()
			if !ok {
				return HandResult{}, fmt.Errorf("short deck dealing %s", streetNames[street])
			}
			h.community = append(h.community, card)
		}

		winner, err := s.playStreet(h, b, opp)
		if err != nil {
			return HandResult{}, err
		}
		if err := s.checkConservation(h); err != nil {
			return HandResult{}, err
		}
		if winner != bot.WinnerNone {
			return s.settleFold(h, winner, handSeed, streetReached), nil
		}

		// Next street starts a fresh betting round.
		h.currentBet = 0
		h.botCommitted = 0
		h.oppCommitted = 0
	}

	return s.settleShowdown(h, handSeed, streetReached)
}

// playStreet runs one betting round: the first actor moves, the second
// responds, and a raise by the second actor gets one closing response.
func (s *Simulator) playStreet(h *handState, b *bot.Bot, opp Opponent) (bot.Winner, error) {
	if h.botFirst {
		action, amount, err := s.botAct(h, b)
		if err != nil {
			return bot.WinnerNone, err
		}
		if action == bot.Fold {
			return bot.WinnerOpp, nil
		}
		s.applyBot(h, action, amount)

		oppAction, oppAmount := opp.Act(h.currentBet-h.oppCommitted, h.pot, h.oppChips, s.config.BigBlind)
		if oppAction == bot.Fold {
			return bot.WinnerBot, nil
		}
		raised := oppAction == bot.Raise
		s.applyOpp(h, oppAction, oppAmount)

		if raised {
			// Closing response is a forced call to keep the round
			// bounded; the bot already chose to continue this street.
			h.botPay(h.currentBet - h.botCommitted)
		}
		return bot.WinnerNone, nil
	}

	oppAction, oppAmount := opp.Act(h.currentBet-h.oppCommitted, h.pot, h.oppChips, s.config.BigBlind)
	if oppAction == bot.Fold && h.currentBet > h.oppCommitted {
		return bot.WinnerBot, nil
	}
	s.applyOpp(h, oppAction, oppAmount)

	action, amount, err := s.botAct(h, b)
	if err != nil {
		return bot.WinnerNone, err
	}
	if action == bot.Fold {
		return bot.WinnerOpp, nil
	}
	s.applyBot(h, action, amount)

	if action == bot.Raise {
		oppAction, _ := opp.Act(h.currentBet-h.oppCommitted, h.pot, h.oppChips, s.config.BigBlind)
		if oppAction == bot.Fold {
			return bot.WinnerBot, nil
		}
		h.oppPay(h.currentBet - h.oppCommitted)
	}
	return bot.WinnerNone, nil
}

func (s *Simulator) botAct(h *handState, b *bot.Bot) (bot.Action, int, error) {
	state := bot.DecisionState{
		Hole:          h.botHole,
		Community:     h.community,
		Pot:           h.pot,
		CurrentBet:    h.currentBet,
		BotCommitted:  h.botCommitted,
		BotStack:      h.botChips,
		OppStack:      h.oppChips,
		RaiseAmount:   s.config.BigBlind,
		EarlyPosition: h.botFirst,
	}
	decision, err := b.Decide(state, s.config.Depth, s.config.Simulations)
	if err != nil {
		return bot.Fold, 0, err
	}
	return decision.Action, decision.Amount, nil
}

func (s *Simulator) applyBot(h *handState, action bot.Action, amount int) {
	switch action {
	case bot.Call:
		h.botPay(h.currentBet - h.botCommitted)
	case bot.Raise:
		target := h.currentBet + amount
		h.botPay(target - h.botCommitted)
		if h.botCommitted > h.currentBet {
			h.currentBet = h.botCommitted
		}
	}
}

func (s *Simulator) applyOpp(h *handState, action bot.Action, amount int) {
	switch action {
	case bot.Call:
		h.oppPay(h.currentBet - h.oppCommitted)
	case bot.Raise:
		target := h.currentBet + amount
		h.oppPay(target - h.oppCommitted)
		if h.oppCommitted > h.currentBet {
			h.currentBet = h.oppCommitted
		}
	}
}

func (s *Simulator) settleFold(h *handState, winner bot.Winner, handSeed int64, street string) HandResult {
	pot := h.pot
	if winner == bot.WinnerBot {
		h.botChips += pot
	} else {
		h.oppChips += pot
	}
	h.pot = 0

	return HandResult{
		Seed:          handSeed,
		NetChips:      h.botChips - s.config.StartingChips,
		FinalPot:      pot,
		StreetReached: street,
	}
}

func (s *Simulator) settleShowdown(h *handState, handSeed int64, street string) (HandResult, error) {
	botRank, err := evaluator.BestHandRank(append(append([]deck.Card(nil), h.botHole...), h.community...))
	if err != nil {
		return HandResult{}, err
	}
	oppRank, err := evaluator.BestHandRank(append(append([]deck.Card(nil), h.oppHole...), h.community...))
	if err != nil {
		return HandResult{}, err
	}

	pot := h.pot
	switch evaluator.Compare(botRank, oppRank) {
	case 1:
		h.botChips += pot
	case -1:
		h.oppChips += pot
	default:
		// Split pot; the odd chip goes to the first actor.
		half := pot / 2
		h.botChips += half
		h.oppChips += half
		if pot%2 == 1 {
			if h.botFirst {
				h.botChips++
			} else {
				h.oppChips++
			}
		}
	}
	h.pot = 0

	return HandResult{
		Seed:           handSeed,
		NetChips:       h.botChips - s.config.StartingChips,
		FinalPot:       pot,
		WentToShowdown: true,
		StreetReached:  street,
	}, nil
}

// checkConservation verifies no chips appear or vanish mid-hand
func (s *Simulator) checkConservation(h *handState) error {
	total := h.botChips + h.oppChips + h.pot
	if want := 2 * s.config.StartingChips; total != want {
		return fmt.Errorf("chip conservation violated: have %d, want %d", total, want)
	}
	return nil
}
