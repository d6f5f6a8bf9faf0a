package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
	"github.com/NhatMinh0311/G02-PokerBot/internal/evaluator"
	"github.com/NhatMinh0311/G02-PokerBot/internal/randutil"
)

type CLI struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Seed          *int64   `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	hands, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintf(os.Stderr, "Board cannot have more than 5 cards\n")
			ctx.Exit(1)
		}
	}

	groups := append([][]deck.Card{board}, hands...)
	if err := deck.ValidateDistinct(groups...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	startTime := time.Now()
	results, err := calculateOdds(hands, board, cli.Iterations, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	displayResults(results, board, cli.Possibilities, cli.Iterations, duration)
}

type PlayerResult struct {
	Hand          []deck.Card
	Wins          int
	Ties          int
	Total         int
	Possibilities map[string]int
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card

	for i, handStr := range handStrings {
		handStr = strings.TrimSpace(handStr)
		hand, err := deck.ParseCards(strings.ReplaceAll(handStr, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %v", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}

	return hands, nil
}

func calculateOdds(hands [][]deck.Card, board []deck.Card, iterations int, rng *rand.Rand) ([]PlayerResult, error) {
	numPlayers := len(hands)
	results := make([]PlayerResult, numPlayers)
	for i := range results {
		results[i].Hand = hands[i]
		results[i].Total = iterations
		results[i].Possibilities = make(map[string]int)
	}

	known := append([][]deck.Card{board}, hands...)
	available := deck.NewDeckExcluding(known...).Cards()
	needed := 5 - len(board)

	scratch := make([]deck.Card, len(available))
	handRanks := make([]evaluator.HandRank, numPlayers)
	fullHand := make([]deck.Card, 7)

	for iter := 0; iter < iterations; iter++ {
		copy(scratch, available)

		// Draw the missing board cards without replacement.
		fullBoard := append([]deck.Card(nil), board...)
		for i := 0; i < needed; i++ {
			j := i + rng.IntN(len(scratch)-i)
			scratch[i], scratch[j] = scratch[j], scratch[i]
			fullBoard = append(fullBoard, scratch[i])
		}

		for i, hand := range hands {
			copy(fullHand[:2], hand)
			copy(fullHand[2:], fullBoard)
			rank, err := evaluator.BestHandRank(fullHand)
			if err != nil {
				return nil, err
			}
			handRanks[i] = rank
			results[i].Possibilities[rank.Category().String()]++
		}

		best := handRanks[0]
		for _, rank := range handRanks[1:] {
			if evaluator.Compare(rank, best) > 0 {
				best = rank
			}
		}

		winners := 0
		for _, rank := range handRanks {
			if evaluator.Compare(rank, best) == 0 {
				winners++
			}
		}

		for i, rank := range handRanks {
			if evaluator.Compare(rank, best) == 0 {
				if winners == 1 {
					results[i].Wins++
				} else {
					results[i].Ties++
				}
			}
		}
	}

	return results, nil
}

func displayResults(results []PlayerResult, board []deck.Card, showPossibilities bool, iterations int, duration time.Duration) {
	if len(board) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", deck.FormatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	for _, result := range results {
		winPct := float64(result.Wins) / float64(result.Total) * 100
		tiePct := float64(result.Ties) / float64(result.Total) * 100

		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(deck.FormatCards(result.Hand)),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)))
	}

	_ = w.Flush()

	if showPossibilities && len(results) > 0 {
		fmt.Printf("\n")
		displayPossibilities(results)
	}

	fmt.Printf("\n")
	fmt.Printf("%d iterations in %v\n", iterations, duration.Truncate(time.Millisecond))
}

func displayPossibilities(results []PlayerResult) {
	orderedTypes := []string{
		"Straight Flush", "Four of a Kind", "Full House", "Flush",
		"Straight", "Three of a Kind", "Two Pair", "One Pair", "High Card",
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for i := range results {
		fmt.Fprintf(w, "\t%s", handStyle.Render(deck.FormatCards(results[i].Hand)))
	}
	fmt.Fprintf(w, "\n")

	for _, handType := range orderedTypes {
		row := false
		for _, result := range results {
			if result.Possibilities[handType] > 0 {
				row = true
				break
			}
		}
		if !row {
			continue
		}

		fmt.Fprintf(w, "%s", categoryStyle.Render(handType))
		for _, result := range results {
			pct := float64(result.Possibilities[handType]) / float64(result.Total) * 100
			fmt.Fprintf(w, "\t%.1f%%", pct)
		}
		fmt.Fprintf(w, "\n")
	}

	_ = w.Flush()
}
