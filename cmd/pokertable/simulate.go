package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/simulator"
)

// SimulateCmd measures one built-in strategy against a field of others.
type SimulateCmd struct {
	Hero       string `default:"chart" help:"Strategy under test"`
	Opponent   string `default:"mixed" help:"Opponent strategy, or mixed"`
	Hands      int    `short:"n" default:"1000" help:"Deals to play; each is played twice"`
	Seed       int64  `help:"Seed for the first deal (default: time based)"`
	Game       string `short:"g" default:"holdem" help:"Variant to deal"`
	Seats      int    `default:"6" help:"Players per hand"`
	SmallBlind int    `default:"1" help:"Small blind"`
	BigBlind   int    `default:"2" help:"Big blind"`
	StackBB    int    `name:"stack" default:"100" help:"Starting stack in big blinds"`
	Debug      bool   `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	variant, err := game.ParseVariant(c.Game)
	if err != nil {
		return err
	}
	rules := game.DefaultRules()
	rules.Game = variant
	rules.MaxSeats = c.Seats
	rules.SmallBlind, rules.BigBlind = c.SmallBlind, c.BigBlind

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	sim, err := simulator.New(simulator.Config{
		Hands:    c.Hands,
		Hero:     c.Hero,
		Opponent: c.Opponent,
		Seed:     c.Seed,
		Rules:    rules,
		StackBB:  c.StackBB,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Simulating %d deals: %s vs %s (seed %d)\n", c.Hands, c.Hero, sim.Field(), c.Seed)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.WriteSummary(os.Stdout, stats, c.Hero, sim.Field())
	fmt.Printf("\nCompleted in %s (%.0f hands/sec)\n", time.Since(start).Round(time.Millisecond),
		float64(stats.Hands)/time.Since(start).Seconds())
	return nil
}
