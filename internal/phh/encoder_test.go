package phh_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/phh"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

// checkedDown is a three handed hand: a raises, b folds, c calls and wins
// with queens after a flop bet is called.
func checkedDown() *game.HandResult {
	act := func(id string, street game.Street, t game.OptionType, amount, total int) game.ActionRecord {
		return game.ActionRecord{PlayerID: id, Street: street, Option: game.Option{Type: t, Amount: amount}, Total: total}
	}
	blind := func(id string, amount int) game.ActionRecord {
		return game.ActionRecord{PlayerID: id, Street: game.Preflop, Option: game.Option{Type: game.Bet, Amount: amount}, Total: amount, Forced: true}
	}

	return &game.HandResult{
		HandID:         "hand-1",
		TableID:        "main",
		Variant:        game.Holdem,
		Started:        time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC),
		Seats:          []int{0, 1, 2},
		PlayerIDs:      []string{"a", "b", "c"},
		StartingStacks: []int{100, 100, 100},
		FinalStacks:    []int{50, 95, 155},
		Antes:          []int{0, 0, 0},
		Blinds:         []int{0, 5, 10},
		Dealt: map[string][]deck.Card{
			"a": cards("As Kd"),
			"b": cards("7c 2d"),
			"c": cards("Qh Qs"),
		},
		Discarded: map[string]deck.Card{},
		Board:     cards("2h 7d 9s Jc 3c"),
		Actions: []game.ActionRecord{
			blind("b", 5),
			blind("c", 10),
			act("a", game.Preflop, game.Raise, 30, 30),
			act("b", game.Preflop, game.Fold, 0, 5),
			act("c", game.Preflop, game.Call, 20, 30),
			act("c", game.Flop, game.Check, 0, 0),
			act("a", game.Flop, game.Bet, 20, 20),
			act("c", game.Flop, game.Call, 20, 20),
			act("c", game.Turn, game.Check, 0, 0),
			act("a", game.Turn, game.Check, 0, 0),
			act("c", game.River, game.Check, 0, 0),
			act("a", game.River, game.Check, 0, 0),
		},
		Pots: []game.PotResult{{
			Amount:   105,
			Eligible: []string{"a", "c"},
			Winners:  []game.Winner{{PlayerID: "c", Amount: 105}},
		}},
		Showdown: true,
	}
}

func TestFromResult(t *testing.T) {
	h := phh.FromResult(checkedDown(), 10)

	assert.Equal(t, "NT", h.Variant)
	assert.Equal(t, []int{1, 2, 3}, h.Seats)
	assert.Equal(t, []int{0, 0, 105}, h.Winnings)
	assert.Equal(t, 10, h.MinBet)
	assert.Equal(t, "15:22:00", h.Time)
	assert.Equal(t, 2025, h.Year)
	assert.Equal(t, []string{
		"d dh p1 AsKd",
		"d dh p2 7c2d",
		"d dh p3 QhQs",
		"p1 cbr 30",
		"p2 f",
		"p3 cc",
		"d db 2h7d9s",
		"p3 cc",
		"p1 cbr 20",
		"p3 cc",
		"d db Jc",
		"p3 cc",
		"p1 cc",
		"d db 3c",
		"p3 cc",
		"p1 cc",
		"p1 sm AsKd",
		"p3 sm QhQs",
	}, h.Actions)
}

func TestFromResultRunsOutBoardAndDiscards(t *testing.T) {
	r := &game.HandResult{
		HandID:    "hand-2",
		Variant:   game.Pineapple,
		PlayerIDs: []string{"a", "b"},
		Seats:     []int{0, 3},
		Dealt: map[string][]deck.Card{
			"a": cards("Ah Kh 2c"),
			"b": cards("9s 9d 3h"),
		},
		Discarded: map[string]deck.Card{"a": cards("2c")[0], "b": cards("3h")[0]},
		Board:     cards("Qh Jh 4d 5s 6c"),
		Actions: []game.ActionRecord{
			{PlayerID: "a", Street: game.Preflop, Option: game.Option{Type: game.Bet, Amount: 5}, Total: 5, Forced: true},
			{PlayerID: "b", Street: game.Preflop, Option: game.Option{Type: game.Bet, Amount: 10}, Total: 10, Forced: true},
			{PlayerID: "a", Street: game.Preflop, Option: game.Option{Type: game.AllIn, Amount: 95}, Total: 100},
			{PlayerID: "b", Street: game.Preflop, Option: game.Option{Type: game.AllIn, Amount: 90}, Total: 100},
		},
		Showdown: true,
	}

	h := phh.FromResult(r, 10)
	assert.Equal(t, []int{1, 4}, h.Seats)
	assert.Empty(t, h.Time)
	assert.Equal(t, []string{
		"d dh p1 AhKh2c",
		"d dh p2 9s9d3h",
		"p1 cbr 100",
		"p2 cc",
		"p1 sd 2c",
		"p2 sd 3h",
		"d db QhJh4d",
		"d db 5s",
		"d db 6c",
		"p1 sm AhKh",
		"p2 sm 9s9d",
	}, h.Actions)
}

func TestEncodeHandHistory(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:           "NT",
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{200, 200, 200},
		Winnings:          []int{0, 0, 0},
		Actions:           []string{"d dh p1 AhKh", "p1 cbr 6", "p2 f"},
		Players:           []string{"alice", "bob", "carol"},
		HandID:            "hand-00042",
		Time:              "15:22:00",
		TimeZone:          "UTC",
		Day:               14,
		Month:             11,
		Year:              2025,
	}

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [200, 200, 200]\n" +
		"winnings = [0, 0, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"p1 cbr 6\", \"p2 f\"]\n" +
		"players = [\"alice\", \"bob\", \"carol\"]\n" +
		"hand = \"hand-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"
	assert.Equal(t, want, buf.String())

	decoded, err := phh.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, hand, decoded)

	assert.Error(t, phh.Encode(&buf, nil))
}

func TestRecorder(t *testing.T) {
	dir := t.TempDir()
	rec, err := phh.NewRecorder(dir, nil)
	require.NoError(t, err)

	result := checkedDown()
	rec.OnEvent(game.Event{Type: game.EventHandStart})
	rec.OnEvent(game.Event{Type: game.EventHandEnd, Result: result, Snapshot: game.Snapshot{BigBlind: 10}})

	ok, failed := rec.Written()
	assert.Equal(t, 1, ok)
	assert.Zero(t, failed)

	data, err := os.ReadFile(filepath.Join(dir, "main", "hand-1.phh"))
	require.NoError(t, err)
	h, err := phh.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "hand-1", h.HandID)
	assert.Equal(t, []int{50, 95, 155}, h.FinishingStacks)

	_, err = phh.NewRecorder("", nil)
	assert.Error(t, err)
}

func TestRecorderRecordsTable(t *testing.T) {
	dir := t.TempDir()
	rec, err := phh.NewRecorder(dir, nil)
	require.NoError(t, err)

	bus := game.NewEventBus()
	bus.Subscribe(rec)

	rules := game.DefaultRules()
	rules.DecisionTimeout = 0
	roster := bot.NewRoster(randutil.New(1), nil)
	table, err := game.NewTable("recorded", rules, roster,
		game.WithEventBus(bus), game.WithRand(randutil.New(2)), game.WithHandLimit(5))
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		roster.Add(id, bot.NewCallBot())
		require.NoError(t, table.Join(game.NewPlayer(id, id, 500)))
	}
	require.NoError(t, table.Run(context.Background()))

	entries, err := os.ReadDir(filepath.Join(dir, "recorded"))
	require.NoError(t, err)
	assert.Len(t, entries, table.HandsPlayed())
	ok, failed := rec.Written()
	assert.Equal(t, table.HandsPlayed(), ok)
	assert.Zero(t, failed)
}
