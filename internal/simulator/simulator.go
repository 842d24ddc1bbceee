// Package simulator measures a strategy's win rate over many independent
// hands against a field of built-in opponents.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/lox/pokertable/internal/statistics"
)

// HeroID is the player ID of the strategy under test.
const HeroID = "hero"

// Mixed is the opponent setting for a fixed mix of built-in strategies.
const Mixed = "mixed"

// mixedField is the fixed opponent mix used for "mixed".
var mixedField = []string{"tag", "random", "tag", "maniac", "call"}

// Config holds configuration for a simulation.
type Config struct {
	Hands    int
	Hero     string
	Opponent string
	Seed     int64
	Rules    game.Rules
	// StackBB is every player's starting stack in big blinds.
	StackBB int
	// Timeout bounds each hand to catch strategies that hang.
	Timeout time.Duration
	Logger  *log.Logger
}

// Simulator plays duplicate hands: every seeded deal is played twice with
// the hero in different seats.
type Simulator struct {
	config Config
	field  []string
}

// New validates the configuration and creates a simulator.
func New(config Config) (*Simulator, error) {
	if config.Hands <= 0 {
		return nil, errors.New("hands must be positive")
	}
	if config.StackBB <= 0 {
		config.StackBB = 100
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Rules.DecisionTimeout = 0
	if err := config.Rules.Validate(); err != nil {
		return nil, err
	}
	if _, err := bot.New(config.Hero, nil); err != nil {
		return nil, fmt.Errorf("hero: %w", err)
	}

	seats := config.Rules.MaxSeats
	field := make([]string, seats-1)
	for i := range field {
		if config.Opponent == Mixed {
			field[i] = mixedField[i%len(mixedField)]
		} else {
			field[i] = config.Opponent
		}
	}
	for _, name := range slices.Compact(slices.Sorted(slices.Values(field))) {
		if _, err := bot.New(name, nil); err != nil {
			return nil, fmt.Errorf("opponent: %w", err)
		}
	}
	return &Simulator{config: config, field: field}, nil
}

// Field describes the opponents.
func (s *Simulator) Field() string {
	if s.config.Opponent == Mixed {
		return fmt.Sprintf("mixed(%s)", strings.Join(s.field, ","))
	}
	return s.config.Opponent
}

// Run plays the configured number of deals and returns the hero's results.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	seats := s.config.Rules.MaxSeats

	for hand := 0; hand < s.config.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := s.config.Seed + int64(hand)
		pos := hand % seats

		for _, p := range []int{pos, (pos + seats/2) % seats} {
			sample, err := s.playHand(ctx, seed, p)
			if err != nil {
				return nil, fmt.Errorf("hand %d (seed %d, seat %d): %w", hand+1, seed, p, err)
			}
			stats.Add(sample)
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playHand plays one deal on a fresh table with the hero in seat.
func (s *Simulator) playHand(ctx context.Context, seed int64, seat int) (statistics.Sample, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	// Both plays of a deal see the same cards; bot choices draw from
	// their own stream.
	rng := randutil.Derive(seed, "bots")
	roster := bot.NewRoster(rng, s.config.Logger)
	table, err := game.NewTable("sim", s.config.Rules, roster,
		game.WithRand(randutil.Derive(seed, "deck")), game.WithLogger(s.config.Logger))
	if err != nil {
		return statistics.Sample{}, err
	}

	stack := s.config.StackBB * s.config.Rules.BigBlind
	opp := 0
	for i := 0; i < s.config.Rules.MaxSeats; i++ {
		id, name := HeroID, s.config.Hero
		if i != seat {
			id, name = fmt.Sprintf("opp%d", opp+1), s.field[opp]
			opp++
		}
		strategy, err := bot.New(name, rng)
		if err != nil {
			return statistics.Sample{}, err
		}
		roster.Add(id, strategy)
		if err := table.Join(game.NewPlayer(id, name, stack)); err != nil {
			return statistics.Sample{}, err
		}
	}

	result, err := table.PlayHand(ctx)
	if err != nil {
		return statistics.Sample{}, err
	}

	// Seats fill in join order and the button starts in seat 0.
	sample, ok := statistics.SampleFor(result, HeroID, result.PlayerIDs[0], s.config.Rules.BigBlind)
	if !ok {
		return statistics.Sample{}, fmt.Errorf("hero missing from hand %s", result.HandID)
	}
	return sample, nil
}

// WriteSummary prints the hero's results.
func WriteSummary(w io.Writer, stats *statistics.Statistics, hero, field string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== %s vs %s ===\n", hero, field)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d without showdown (%.1f%%)\n",
			stats.ShowdownWins, 100*float64(stats.ShowdownWins)/float64(wins),
			stats.NonShowdownWins, 100*float64(stats.NonShowdownWins)/float64(wins))
	}
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Showdown: %.2f bb/hand, non-showdown: %.2f bb/hand\n",
			stats.ShowdownBB/float64(stats.Hands), stats.NonShowdownBB/float64(stats.Hands))
		fmt.Fprintf(w, "Big pots (>=%dbb): %d hands, %.2f bb total; largest %.1f bb\n",
			statistics.BigPotBB, stats.BigPots, stats.BigPotsBB, stats.MaxPotBB)
	}

	for _, p := range slices.Sorted(maps.Keys(stats.Positions)) {
		ps := stats.Positions[p]
		fmt.Fprintf(w, "Button +%d: %d hands, %.3f bb/hand\n", p, ps.Hands, ps.Mean())
	}
}
