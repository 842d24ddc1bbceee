package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	facingBet = []game.LegalOption{
		{Type: game.Fold},
		{Type: game.Call, Min: 20, Max: 20, Total: 20},
		{Type: game.Raise, Min: 40, Max: 500, Total: 40},
		{Type: game.AllIn, Min: 500, Max: 500, Total: 500},
	}
	checkedTo = []game.LegalOption{
		{Type: game.Check},
		{Type: game.Bet, Min: 10, Max: 500, Total: 10},
		{Type: game.AllIn, Min: 500, Max: 500, Total: 500},
	}
)

func request(street game.Street, hole string, chips int, legal []game.LegalOption) game.DecisionRequest {
	snap := game.Snapshot{
		Street:   street,
		BigBlind: 10,
		Players: []game.PlayerView{
			{ID: "me", Chips: chips, HoleCards: deck.MustParseCards(hole)},
			{ID: "villain", Chips: 500},
		},
		Pots: []game.PotView{{Amount: 60}},
	}
	return game.DecisionRequest{PlayerID: "me", Legal: legal, Snapshot: snap}
}

func TestNew(t *testing.T) {
	rng := randutil.New(1)
	for _, name := range Names {
		s, err := New(name, rng)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}
	_, err := New("solver", rng)
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestFoldBot(t *testing.T) {
	bot := NewFoldBot()
	assert.Equal(t, game.Check, bot.Decide(request(game.Flop, "7c 2d", 500, checkedTo)).Option.Type)
	assert.Equal(t, game.Fold, bot.Decide(request(game.Flop, "Ac Ad", 500, facingBet)).Option.Type)
}

func TestCallBot(t *testing.T) {
	bot := NewCallBot()

	d := bot.Decide(request(game.Flop, "7c 2d", 500, facingBet))
	assert.Equal(t, game.Option{Type: game.Call, Amount: 20}, d.Option)

	// 50 into a pot of 60 that already includes the bet.
	river := []game.LegalOption{{Type: game.Fold}, {Type: game.Call, Min: 50, Max: 50}}
	req := request(game.River, "7c 2d", 500, river)
	req.Snapshot.Pots = []game.PotView{{Amount: 110}}
	assert.Equal(t, game.Fold, bot.Decide(req).Option.Type)

	short := request(game.Preflop, "7c 2d", 80, []game.LegalOption{
		{Type: game.Fold}, {Type: game.Call, Min: 10, Max: 10}, {Type: game.AllIn, Min: 80, Max: 80},
	})
	assert.Equal(t, game.Option{Type: game.AllIn, Amount: 80}, bot.Decide(short).Option)
}

func TestChartBot(t *testing.T) {
	bot := NewChartBot()

	shove := request(game.Preflop, "As Ah", 150, facingBet)
	assert.Equal(t, game.AllIn, bot.Decide(shove).Option.Type)

	deep := request(game.Preflop, "As Ah", 5000, facingBet)
	assert.Equal(t, game.Call, bot.Decide(deep).Option.Type)

	trash := request(game.Preflop, "7c 2d", 150, facingBet)
	assert.Equal(t, game.Fold, bot.Decide(trash).Option.Type)

	// Pineapple hole cards are charted on their best two.
	three := request(game.Preflop, "7c Ah As", 150, facingBet)
	assert.Equal(t, game.AllIn, bot.Decide(three).Option.Type)

	post := request(game.Turn, "7c 2d", 150, checkedTo)
	assert.Equal(t, game.Check, bot.Decide(post).Option.Type)
}

func TestTAGBot(t *testing.T) {
	bot := NewTAGBot(randutil.New(3))

	d := bot.Decide(request(game.Preflop, "Kd Kc", 500, facingBet))
	assert.Equal(t, game.Raise, d.Option.Type)
	assert.Equal(t, 40+(500-40)/4, d.Option.Amount)

	assert.Equal(t, game.Check, bot.Decide(request(game.Flop, "7c 2d", 500, checkedTo)).Option.Type)
	for i := 0; i < 20; i++ {
		opt := bot.Decide(request(game.Flop, "7c 2d", 500, facingBet)).Option.Type
		assert.Contains(t, []game.OptionType{game.Call, game.Fold}, opt)
	}
}

func TestRandomStrategiesStayLegal(t *testing.T) {
	rng := randutil.New(11)
	for _, s := range []Strategy{NewRandBot(rng), NewManiacBot(rng)} {
		for i := 0; i < 200; i++ {
			for _, legal := range [][]game.LegalOption{facingBet, checkedTo} {
				opt := s.Decide(request(game.Flop, "9s 8s", 500, legal)).Option
				l, ok := game.FindOption(legal, opt.Type)
				require.True(t, ok, "%T chose %s", s, opt.Type)
				if opt.Type != game.Fold && opt.Type != game.Check {
					assert.GreaterOrEqual(t, opt.Amount, l.Min)
					assert.LessOrEqual(t, opt.Amount, l.Max)
				}
			}
		}
	}
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	roster := NewRoster(randutil.New(5), log.New(io.Discard))
	roster.Add("me", NewFoldBot())
	roster.Add("dealer", NewManiacBot(randutil.New(6)))

	opt, err := roster.DesiredOption(ctx, request(game.Flop, "7c 2d", 500, facingBet))
	require.NoError(t, err)
	assert.Equal(t, game.Fold, opt.Type)

	req := request(game.Flop, "7c 2d", 500, facingBet)
	req.PlayerID = "stranger"
	_, err = roster.DesiredOption(ctx, req)
	assert.Error(t, err)

	assert.Equal(t, game.Omaha, roster.DesiredGameType(ctx, "dealer"))
	assert.True(t, roster.DesiredGameType(ctx, "me").Playable())
}

func TestRosterDiscardKeepsBestPair(t *testing.T) {
	roster := NewRoster(randutil.New(1), nil)
	hole := deck.MustParseCards("Ks 4d Kh")
	assert.Equal(t, 1, roster.Discard(context.Background(), "me", hole))
}

func TestRosterPlaysTable(t *testing.T) {
	rules := game.DefaultRules()
	rules.DecisionTimeout = 0
	rules.Strict = true
	rng := randutil.New(21)

	roster := NewRoster(rng, nil)
	table, err := game.NewTable("bots", rules, roster, game.WithRand(randutil.New(22)), game.WithHandLimit(50))
	require.NoError(t, err)

	for i, name := range Names {
		s, err := New(name, rng)
		require.NoError(t, err)
		id := name + "-bot"
		roster.Add(id, s)
		require.NoError(t, table.Join(game.NewPlayer(id, "", 1000)), i)
	}

	require.NoError(t, table.Run(context.Background()))
	total := 0
	for _, p := range table.Players() {
		total += p.Chips
	}
	assert.Equal(t, 1000*len(Names), total)
	assert.Positive(t, table.HandsPlayed())
}
