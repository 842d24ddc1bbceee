package main

import (
	"bytes"
	"testing"

	"github.com/lox/pokertable/internal/display"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/phh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCommand(t *testing.T) {
	cmd := EvalCmd{Game: "holdem", Board: "Ks Qs 7h 7d 2c", Hands: []string{"alice=Ah 3d", "Kd 4c"}}
	hands, err := cmd.evaluate()
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "alice", hands[0].Name)
	assert.Equal(t, evaluator.Pair, hands[0].Result.Category)
	assert.Equal(t, "player 2", hands[1].Name)
	assert.Equal(t, evaluator.TwoPair, hands[1].Result.Category)
}

func TestEvalCommandOmaha(t *testing.T) {
	// Four spades in hand but only two may be used, so no flush.
	cmd := EvalCmd{Game: "omaha", Board: "2s 7s Jd Qc 9h", Hands: []string{"As Ks Qs 3s"}}
	hands, err := cmd.evaluate()
	require.NoError(t, err)
	assert.Equal(t, evaluator.Pair, hands[0].Result.Category)
}

func TestEvalCommandErrors(t *testing.T) {
	_, err := (&EvalCmd{Game: "razz", Hands: []string{"As Ks"}}).evaluate()
	assert.Error(t, err)
	_, err = (&EvalCmd{Game: "mixed", Hands: []string{"As Ks"}}).evaluate()
	assert.Error(t, err)
	_, err = (&EvalCmd{Game: "holdem", Board: "Zz", Hands: []string{"As Ks"}}).evaluate()
	assert.ErrorContains(t, err, "board")
	_, err = (&EvalCmd{Game: "holdem", Board: "As 2c 3d", Hands: []string{"As Ks"}}).evaluate()
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:         "NT",
		StartingStacks:  []int{100, 100},
		FinishingStacks: []int{90, 110},
		Players:         []string{"alice", "bob"},
		Actions: []string{
			"d dh p1 AsKd",
			"d dh p2 QhQs",
			"p1 cbr 10",
			"p2 cc",
			"d db 2h7d9s",
			"p2 sm QhQs",
		},
	}
	out := replay(hand, display.NewStyles(&bytes.Buffer{}))
	assert.Contains(t, out, "alice dealt AsKd")
	assert.Contains(t, out, "  alice bets to 10\n")
	assert.Contains(t, out, "  bob checks or calls\n")
	assert.Contains(t, out, "board 2h7d9s")
	assert.Contains(t, out, "  bob shows QhQs\n")
	assert.Contains(t, out, "alice -10")
	assert.Contains(t, out, "bob +10")
}

func TestSimulateCommand(t *testing.T) {
	cmd := SimulateCmd{Hero: "tag", Opponent: "call", Hands: 6, Seed: 3, Game: "holdem", Seats: 4, SmallBlind: 1, BigBlind: 2, StackBB: 50}
	require.NoError(t, cmd.Run())

	bad := cmd
	bad.Game = "razz"
	assert.Error(t, bad.Run())
}
