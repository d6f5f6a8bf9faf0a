package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/NhatMinh0311/G02-PokerBot/internal/simulator"
	"github.com/NhatMinh0311/G02-PokerBot/internal/statistics"
)

type CLI struct {
	Hands       int    `default:"1000" help:"Number of hands to simulate"`
	Opponent    string `default:"call" help:"Opponent type: call, rand, aggro"`
	Seed        int64  `default:"0" help:"RNG seed (0 for random)"`
	Depth       int    `default:"2" help:"Minimax search depth"`
	Simulations int    `default:"300" help:"Monte Carlo simulations per decision"`
	Verbose     bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	fmt.Printf("Starting simulation: %d hands vs %s-bot (seed: %d)\n",
		cli.Hands, cli.Opponent, cli.Seed)

	collector := statistics.NewCollector()
	sim := simulator.New(simulator.Config{
		Hands:       cli.Hands,
		Opponent:    cli.Opponent,
		Seed:        cli.Seed,
		Depth:       cli.Depth,
		Simulations: cli.Simulations,
		Logger:      logger,
		Recorder:    collector,
	})

	startTime := time.Now()
	result, err := sim.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	if err := collector.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Statistics validation failed: %v\n", err)
		ctx.Exit(1)
	}

	printResults(result, collector, cli.Opponent, duration)
}

func printResults(result simulator.Result, collector *statistics.Collector, opponent string, duration time.Duration) {
	fmt.Printf("\n=== FINAL RESULTS vs %s-bot ===\n", opponent)
	fmt.Printf("Hands played: %d in %v (%.1f hands/sec)\n",
		result.Hands, duration.Truncate(time.Millisecond),
		float64(result.Hands)/duration.Seconds())
	fmt.Printf("Net: %+d chips (%.4f bb/hand)\n", result.NetChips, result.NetBB())
	fmt.Printf("Won %d, lost %d, split %d (%d showdowns)\n",
		result.BotWins, result.OppWins, result.Splits, result.Showdowns)

	summary := collector.Summarize()
	fmt.Printf("\n=== DECISION ANALYSIS ===\n")
	fmt.Printf("Decisions: %d (fold %d, check %d, call %d, raise %d)\n",
		summary.Actions.Total(), summary.Actions.Folds, summary.Actions.Checks,
		summary.Actions.Calls, summary.Actions.Raises)
	if summary.Fallbacks > 0 {
		fmt.Printf("Fallback decisions: %d\n", summary.Fallbacks)
	}
	fmt.Printf("Win probability: mean %.3f, stddev %.3f, p95 %.3f\n",
		summary.MeanWinProb, summary.StdDevWinProb, collector.WinProbPercentile(0.95))
	fmt.Printf("Latency: mean %v, max %v\n",
		summary.MeanLatency.Truncate(time.Microsecond),
		summary.MaxLatency.Truncate(time.Microsecond))
}
