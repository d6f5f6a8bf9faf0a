// Package bot implements the decision engine: a bounded minimax search
// over a betting-action abstraction, with Monte Carlo win probability
// estimates at the leaves and a pot-odds based action policy on top.
package bot

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/equity"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

// Decision is the outcome of a single call to Decide.
type Decision struct {
	Action Action
	// Amount is the chips added on a raise, zero otherwise.
	Amount int
	// WinProb is the root win probability estimate the policy used.
	WinProb float64
	Elapsed time.Duration
	// Fallback is true when the estimator failed and the bot took the
	// safe default instead of searching.
	Fallback bool
}

// Recorder receives every decision the bot makes. Implementations must
// be safe for use from the goroutine calling Decide.
type Recorder interface {
	RecordDecision(Decision)
}

// NopRecorder discards all decisions.
type NopRecorder struct{}

func (NopRecorder) RecordDecision(Decision) {}

// Bot is the decision engine. It is not safe for concurrent use; run
// one Bot per seat.
type Bot struct {
	cfg       Config
	rng       *rand.Rand
	clock     quartz.Clock
	logger    *log.Logger
	recorder  Recorder
	estimator *equity.Estimator
	winProb   winProbFunc
}

// Option configures a Bot.
type Option func(*Bot)

// WithConfig replaces the default strategy tuning.
func WithConfig(cfg Config) Option {
	return func(b *Bot) { b.cfg = cfg }
}

// WithSeed makes all randomized choices reproducible.
func WithSeed(seed int64) Option {
	return func(b *Bot) { b.rng = randutil.New(seed) }
}

// WithClock injects the clock used for latency measurement.
func WithClock(clock quartz.Clock) Option {
	return func(b *Bot) { b.clock = clock }
}

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithRecorder attaches a decision sink.
func WithRecorder(r Recorder) Option {
	return func(b *Bot) { b.recorder = r }
}

// WithWinProbFunc replaces the Monte Carlo estimator, mainly for tests.
func WithWinProbFunc(fn winProbFunc) Option {
	return func(b *Bot) { b.winProb = fn }
}

// New creates a Bot with the default tuning, a time-seeded RNG, and the
// parallel Monte Carlo estimator.
func New(opts ...Option) *Bot {
	b := &Bot{
		cfg:       DefaultConfig(),
		rng:       randutil.New(time.Now().UnixNano()),
		clock:     quartz.NewReal(),
		logger:    log.Default().WithPrefix("bot"),
		recorder:  NopRecorder{},
		estimator: equity.NewEstimator(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.winProb == nil {
		b.winProb = func(hole, community []deck.Card, sims int) (float64, error) {
			return b.estimator.WinProbability(hole, community, sims, b.rng)
		}
	}
	return b
}

// Decide picks an action for the given state. depth bounds the minimax
// lookahead and sims is the Monte Carlo budget for the root estimate.
// Decide never returns an error for estimator failures: it degrades to
// a safe call (or check) and flags the decision as a fallback.
func (b *Bot) Decide(state DecisionState, depth, sims int) (Decision, error) {
	if err := state.Validate(); err != nil {
		return Decision{}, err
	}
	if depth < 1 {
		depth = 1
	}
	if depth > b.cfg.Strategy.MaxDepth {
		depth = b.cfg.Strategy.MaxDepth
	}
	if sims < 1 {
		sims = 1
	}

	start := b.clock.Now()

	winProb, err := b.winProb(state.Hole, state.Community, sims)
	if err != nil {
		d := b.fallback(state, start)
		b.logger.Warn("estimator failed, using fallback action",
			"err", err, "action", d.Action)
		b.recorder.RecordDecision(d)
		return d, nil
	}

	d, err := b.decide(state, depth, winProb)
	if err != nil {
		// Search leaves share the estimator, so a mid-search failure
		// degrades the same way a root failure does.
		d = b.fallback(state, start)
		b.logger.Warn("search failed, using fallback action",
			"err", err, "action", d.Action)
		b.recorder.RecordDecision(d)
		return d, nil
	}
	d.WinProb = winProb
	d.Elapsed = b.clock.Since(start)

	b.logger.Debug("decision",
		"action", d.Action, "amount", d.Amount,
		"win_prob", winProb, "pot", state.Pot, "to_call", state.ToCall(),
		"elapsed", d.Elapsed)
	b.recorder.RecordDecision(d)
	return d, nil
}

func (b *Bot) decide(state DecisionState, depth int, winProb float64) (Decision, error) {
	cfg := b.cfg.Strategy
	toCall := state.ToCall()

	s := &searcher{
		cfg:      b.cfg,
		winProb:  b.winProb,
		leafSims: b.leafSims(depth),
	}

	if toCall == 0 {
		// Nothing to defend against; choose between checking and
		// betting for value or as a semi-bluff.
		if winProb >= cfg.RaiseNoBetWinProb || b.semiBluff(state, winProb) {
			return b.raiseDecision(state, winProb), nil
		}
		return Decision{Action: Check}, nil
	}

	// Pot odds with a safety margin that widens with search depth.
	potOdds := float64(toCall) / float64(state.Pot+toCall)
	margin := cfg.BaseMargin + cfg.MarginPerDepth*float64(depth)
	if b.cheapCall(state, toCall) {
		margin -= cfg.CheapDefendAdjust
	}
	if winProb < potOdds+margin {
		return Decision{Action: Fold}, nil
	}

	callVal, err := b.valueOf(s, state, Call, depth)
	if err != nil {
		return Decision{}, err
	}
	raiseVal, err := b.valueOf(s, state, Raise, depth)
	if err != nil {
		return Decision{}, err
	}

	if raiseVal > callVal-cfg.RaiseValueMargin && winProb >= cfg.RaiseMinWinProb {
		return b.raiseDecision(state, winProb), nil
	}
	if b.semiBluff(state, winProb) {
		return b.raiseDecision(state, winProb), nil
	}
	return Decision{Action: Call}, nil
}

// valueOf searches the subtree under one candidate action.
func (b *Bot) valueOf(s *searcher, state DecisionState, action Action, depth int) (float64, error) {
	next, err := applyActionAs(state, action, actorBot)
	if err != nil {
		return 0, err
	}
	return s.search(next, depth-1, math.Inf(-1), math.Inf(1), false)
}

// semiBluff rolls for an occasional raise with a drawing-strength hand.
// The band keeps it off hopeless hands and off hands that raise for
// value anyway.
func (b *Bot) semiBluff(state DecisionState, winProb float64) bool {
	cfg := b.cfg.Strategy
	if winProb < cfg.BluffMinWinProb || winProb >= cfg.BluffMaxWinProb {
		return false
	}
	freq := cfg.BluffBaseFrequency
	if !state.EarlyPosition {
		freq += cfg.BluffPositionBonus
	}
	if state.Pot > cfg.BluffLargePotSize {
		freq -= cfg.BluffLargePotPenalty
	}
	return b.rng.Float64() < freq
}

// cheapCall reports whether the outstanding bet is small enough in
// absolute chips or relative to stack that folding would overfold.
func (b *Bot) cheapCall(state DecisionState, toCall int) bool {
	cfg := b.cfg.Strategy
	if toCall <= cfg.CheapDefendChips {
		return true
	}
	return float64(toCall) <= cfg.CheapDefendStackFraction*float64(state.BotStack)
}

func (b *Bot) raiseDecision(state DecisionState, winProb float64) Decision {
	return Decision{
		Action: Raise,
		Amount: SizeBet(b.cfg, state, winProb, b.rng),
	}
}

// leafSims scales the per-leaf simulation budget down as depth grows so
// total search cost stays bounded.
func (b *Bot) leafSims(depth int) int {
	cfg := b.cfg.Strategy
	sims := float64(cfg.LeafSims) / (1 + cfg.LeafSimsDepthFactor*float64(depth-1))
	n := int(sims)
	if n < cfg.LeafSimsMin {
		n = cfg.LeafSimsMin
	}
	if n > cfg.LeafSimsMax {
		n = cfg.LeafSimsMax
	}
	return n
}

// fallback is the degraded policy when no estimate is available: check
// when free, otherwise call. Folding blind would be strictly worse.
func (b *Bot) fallback(state DecisionState, start time.Time) Decision {
	action := Call
	if state.ToCall() == 0 {
		action = Check
	}
	return Decision{
		Action:   action,
		Elapsed:  b.clock.Since(start),
		Fallback: true,
	}
}
