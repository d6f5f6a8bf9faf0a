package bot

import (
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds the tunable strategy parameters. Every field has a sane
// default so a zero config file, or no file at all, still produces a
// playable bot.
type Config struct {
	Strategy StrategySettings
}

// StrategySettings contains the decision policy tunables
type StrategySettings struct {
	// Leaf heuristic weights; they should sum to 1.
	WinProbWeight  float64
	PotValueWeight float64
	BankrollWeight float64

	// Risk penalty applied to weak hands contesting a bloated pot.
	RiskPenaltyLargePot float64
	LargePotThreshold   int
	LowWinProbThreshold float64

	// Fold policy: fold when win probability drops below pot odds plus
	// this margin, unless the call is cheap.
	BaseMargin               float64
	MarginPerDepth           float64
	CheapDefendChips         int
	CheapDefendStackFraction float64
	CheapDefendAdjust        float64

	// Raise policy.
	RaiseNoBetWinProb float64
	RaiseMinWinProb   float64
	RaiseValueMargin  float64

	// Semi-bluff band.
	BluffMinWinProb      float64
	BluffMaxWinProb      float64
	BluffBaseFrequency   float64
	BluffPositionBonus   float64
	BluffLargePotPenalty float64
	BluffLargePotSize    int

	// Monte Carlo budget per search leaf.
	LeafSims            int
	LeafSimsMin         int
	LeafSimsMax         int
	LeafSimsDepthFactor float64

	// Bet sizing.
	MinBet int

	// Search depth cap.
	MaxDepth int
}

// configFile is the HCL decode schema. Fields are pointers so an
// attribute explicitly set to zero can be told apart from one that was
// left out of the file.
type configFile struct {
	Strategy *strategyFile `hcl:"strategy,block"`
}

type strategyFile struct {
	WinProbWeight  *float64 `hcl:"win_prob_weight,optional"`
	PotValueWeight *float64 `hcl:"pot_value_weight,optional"`
	BankrollWeight *float64 `hcl:"bankroll_weight,optional"`

	RiskPenaltyLargePot *float64 `hcl:"risk_penalty_large_pot,optional"`
	LargePotThreshold   *int     `hcl:"large_pot_threshold,optional"`
	LowWinProbThreshold *float64 `hcl:"low_win_prob_threshold,optional"`

	BaseMargin               *float64 `hcl:"base_margin,optional"`
	MarginPerDepth           *float64 `hcl:"margin_per_depth,optional"`
	CheapDefendChips         *int     `hcl:"cheap_defend_chips,optional"`
	CheapDefendStackFraction *float64 `hcl:"cheap_defend_stack_fraction,optional"`
	CheapDefendAdjust        *float64 `hcl:"cheap_defend_adjust,optional"`

	RaiseNoBetWinProb *float64 `hcl:"raise_no_bet_win_prob,optional"`
	RaiseMinWinProb   *float64 `hcl:"raise_min_win_prob,optional"`
	RaiseValueMargin  *float64 `hcl:"raise_value_margin,optional"`

	BluffMinWinProb      *float64 `hcl:"bluff_min_win_prob,optional"`
	BluffMaxWinProb      *float64 `hcl:"bluff_max_win_prob,optional"`
	BluffBaseFrequency   *float64 `hcl:"bluff_base_frequency,optional"`
	BluffPositionBonus   *float64 `hcl:"bluff_position_bonus,optional"`
	BluffLargePotPenalty *float64 `hcl:"bluff_large_pot_penalty,optional"`
	BluffLargePotSize    *int     `hcl:"bluff_large_pot_size,optional"`

	LeafSims            *int     `hcl:"leaf_sims,optional"`
	LeafSimsMin         *int     `hcl:"leaf_sims_min,optional"`
	LeafSimsMax         *int     `hcl:"leaf_sims_max,optional"`
	LeafSimsDepthFactor *float64 `hcl:"leaf_sims_depth_factor,optional"`

	MinBet *int `hcl:"min_bet,optional"`

	MaxDepth *int `hcl:"max_depth,optional"`
}

// DefaultConfig returns the built-in strategy tuning
func DefaultConfig() Config {
	return Config{
		Strategy: StrategySettings{
			WinProbWeight:  0.68,
			PotValueWeight: 0.25,
			BankrollWeight: 0.07,

			RiskPenaltyLargePot: 0.15,
			LargePotThreshold:   30,
			LowWinProbThreshold: 0.45,

			BaseMargin:               0.05,
			MarginPerDepth:           0.005,
			CheapDefendChips:         5,
			CheapDefendStackFraction: 0.05,
			CheapDefendAdjust:        0.08,

			RaiseNoBetWinProb: 0.50,
			RaiseMinWinProb:   0.55,
			RaiseValueMargin:  0.05,

			BluffMinWinProb:      0.30,
			BluffMaxWinProb:      0.45,
			BluffBaseFrequency:   0.12,
			BluffPositionBonus:   0.03,
			BluffLargePotPenalty: 0.05,
			BluffLargePotSize:    30,

			LeafSims:            120,
			LeafSimsMin:         80,
			LeafSimsMax:         350,
			LeafSimsDepthFactor: 0.4,

			MinBet:   2,
			MaxDepth: 10,
		},
	}
}

// LoadConfig loads strategy configuration from an HCL file. A missing
// file yields the defaults; fields absent from the file keep their
// default values, while fields present in the file are honored even
// when set to zero.
func LoadConfig(filename string) (Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw configFile
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if raw.Strategy != nil {
		raw.Strategy.overlay(&config.Strategy)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// overlay copies every field that was present in the file onto the
// defaults.
func (f *strategyFile) overlay(s *StrategySettings) {
	setFloat(&s.WinProbWeight, f.WinProbWeight)
	setFloat(&s.PotValueWeight, f.PotValueWeight)
	setFloat(&s.BankrollWeight, f.BankrollWeight)
	setFloat(&s.RiskPenaltyLargePot, f.RiskPenaltyLargePot)
	setInt(&s.LargePotThreshold, f.LargePotThreshold)
	setFloat(&s.LowWinProbThreshold, f.LowWinProbThreshold)
	setFloat(&s.BaseMargin, f.BaseMargin)
	setFloat(&s.MarginPerDepth, f.MarginPerDepth)
	setInt(&s.CheapDefendChips, f.CheapDefendChips)
	setFloat(&s.CheapDefendStackFraction, f.CheapDefendStackFraction)
	setFloat(&s.CheapDefendAdjust, f.CheapDefendAdjust)
	setFloat(&s.RaiseNoBetWinProb, f.RaiseNoBetWinProb)
	setFloat(&s.RaiseMinWinProb, f.RaiseMinWinProb)
	setFloat(&s.RaiseValueMargin, f.RaiseValueMargin)
	setFloat(&s.BluffMinWinProb, f.BluffMinWinProb)
	setFloat(&s.BluffMaxWinProb, f.BluffMaxWinProb)
	setFloat(&s.BluffBaseFrequency, f.BluffBaseFrequency)
	setFloat(&s.BluffPositionBonus, f.BluffPositionBonus)
	setFloat(&s.BluffLargePotPenalty, f.BluffLargePotPenalty)
	setInt(&s.BluffLargePotSize, f.BluffLargePotSize)
	setInt(&s.LeafSims, f.LeafSims)
	setInt(&s.LeafSimsMin, f.LeafSimsMin)
	setInt(&s.LeafSimsMax, f.LeafSimsMax)
	setFloat(&s.LeafSimsDepthFactor, f.LeafSimsDepthFactor)
	setInt(&s.MinBet, f.MinBet)
	setInt(&s.MaxDepth, f.MaxDepth)
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks internal consistency of the tuning
func (c Config) Validate() error {
	s := c.Strategy
	sum := s.WinProbWeight + s.PotValueWeight + s.BankrollWeight
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("heuristic weights must sum to 1, got %.4f", sum)
	}
	if s.BluffMinWinProb >= s.BluffMaxWinProb {
		return fmt.Errorf("bluff win prob band is empty: [%.2f, %.2f)", s.BluffMinWinProb, s.BluffMaxWinProb)
	}
	if s.LeafSimsMin > s.LeafSimsMax {
		return fmt.Errorf("leaf sims bounds inverted: min %d > max %d", s.LeafSimsMin, s.LeafSimsMax)
	}
	if s.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", s.MaxDepth)
	}
	if s.MinBet < 1 {
		return fmt.Errorf("min bet must be at least 1, got %d", s.MinBet)
	}
	return nil
}
