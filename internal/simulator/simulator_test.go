package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/lox/pokertable/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(hero, opponent string) Config {
	return Config{
		Hands:    12,
		Hero:     hero,
		Opponent: opponent,
		Seed:     100,
		Rules:    game.DefaultRules(),
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{Hands: 0, Hero: "tag", Opponent: "call", Rules: game.DefaultRules()})
	assert.ErrorContains(t, err, "hands")

	_, err = New(testConfig("solver", "call"))
	assert.ErrorContains(t, err, "hero")

	_, err = New(testConfig("tag", "solver"))
	assert.ErrorContains(t, err, "opponent")

	bad := testConfig("tag", "call")
	bad.Rules.BigBlind = 0
	_, err = New(bad)
	assert.ErrorIs(t, err, game.ErrInvalidRules)
}

func TestField(t *testing.T) {
	sim, err := New(testConfig("tag", Mixed))
	require.NoError(t, err)
	assert.Equal(t, "mixed(tag,random,tag,maniac,call)", sim.Field())

	sim, err = New(testConfig("tag", "call"))
	require.NoError(t, err)
	assert.Equal(t, "call", sim.Field())
}

func TestRunPlaysDuplicateHands(t *testing.T) {
	sim, err := New(testConfig("chart", Mixed))
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 24, stats.Hands)
	require.NoError(t, stats.Validate())

	// 12 deals rotate the hero through six seats, each played from two.
	for p := 0; p < 6; p++ {
		assert.Equal(t, 4, stats.Positions[p].Hands, "position %d", p)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() []float64 {
		sim, err := New(testConfig("tag", Mixed))
		require.NoError(t, err)
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}
	assert.Equal(t, run(), run())
}

func TestFoldBotNeverStealsPots(t *testing.T) {
	cfg := testConfig("fold", "call")
	cfg.Hands = 6
	sim, err := New(cfg)
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	for _, v := range stats.Values {
		assert.GreaterOrEqual(t, v, -1.0, "a folder risks at most the big blind")
	}
	assert.Zero(t, stats.NonShowdownWins)
}

func TestRunCancelled(t *testing.T) {
	sim, err := New(testConfig("tag", "call"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteSummary(t *testing.T) {
	sim, err := New(testConfig("call", "fold"))
	require.NoError(t, err)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, stats, "call", sim.Field())
	out := buf.String()
	assert.Contains(t, out, "=== call vs fold ===")
	assert.Contains(t, out, "Hands played: 24")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "Button +0:")
}
