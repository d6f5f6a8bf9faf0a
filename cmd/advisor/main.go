package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/NhatMinh0311/G02-PokerBot/internal/advisor"
	"github.com/NhatMinh0311/G02-PokerBot/internal/bot"
)

var CLI struct {
	Config   string `short:"c" default:"advisor.hcl" help:"Path to HCL strategy configuration file"`
	Addr     string `short:"a" default:"localhost:8090" help:"Address to bind the advisor to"`
	LogLevel string `short:"l" default:"info" help:"Log level (debug, info, warn, error)"`
	Seed     int64  `help:"RNG seed for reproducible advice (0 for random)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := bot.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	var botOpts []bot.Option
	if CLI.Seed != 0 {
		botOpts = append(botOpts, bot.WithSeed(CLI.Seed))
	}

	logger.Info("Starting advisor", "addr", CLI.Addr, "config", CLI.Config)

	server := advisor.NewServer(CLI.Addr, cfg, logger, botOpts...)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down advisor...")
		_ = server.Stop()
		os.Exit(0)
	}()

	if err := server.Start(); err != nil {
		logger.Error("Advisor failed", "error", err)
		ctx.Exit(1)
	}
}
