package statistics

import (
	"maps"
	"slices"
	"sync"

	"github.com/lox/pokertable/internal/game"
)

// Collector builds per-player statistics from finished hands. It is a
// game.EventSubscriber and may be shared between tables.
type Collector struct {
	mu      sync.Mutex
	players map[string]*Statistics
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{players: make(map[string]*Statistics)}
}

// OnEvent records hand end events.
func (c *Collector) OnEvent(e game.Event) {
	if e.Type != game.EventHandEnd || e.Result == nil || e.Snapshot.BigBlind <= 0 {
		return
	}
	c.Add(e.Result, e.Snapshot.Dealer, e.Snapshot.BigBlind)
}

// Add records one hand. dealer is the button's player ID.
func (c *Collector) Add(r *game.HandResult, dealer string, bigBlind int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range r.PlayerIDs {
		sample, ok := SampleFor(r, id, dealer, bigBlind)
		if !ok {
			continue
		}
		s, ok := c.players[id]
		if !ok {
			s = &Statistics{}
			c.players[id] = s
		}
		s.Add(sample)
	}
}

// SampleFor extracts one player's sample from a finished hand.
func SampleFor(r *game.HandResult, id, dealer string, bigBlind int) (Sample, bool) {
	i := slices.Index(r.PlayerIDs, id)
	if i < 0 || i >= len(r.StartingStacks) || i >= len(r.FinalStacks) || bigBlind <= 0 {
		return Sample{}, false
	}
	folded := slices.ContainsFunc(r.Actions, func(a game.ActionRecord) bool {
		return a.PlayerID == id && a.Option.Type == game.Fold
	})
	pot := 0
	for _, p := range r.Pots {
		pot += p.Amount
	}
	n := len(r.PlayerIDs)
	button := max(slices.Index(r.PlayerIDs, dealer), 0)
	bb := float64(bigBlind)
	return Sample{
		NetBB:    float64(r.FinalStacks[i]-r.StartingStacks[i]) / bb,
		Showdown: r.Showdown && !folded,
		Position: (i - button + n) % n,
		PotBB:    float64(pot) / bb,
	}, true
}

// Row summarises one player.
type Row struct {
	PlayerID        string
	Hands           int
	BBPerHand       float64
	Low, High       float64
	ShowdownWins    int
	NonShowdownWins int
}

// Summary returns a row per player, best win rate first.
func (c *Collector) Summary() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]Row, 0, len(c.players))
	for _, id := range slices.Sorted(maps.Keys(c.players)) {
		s := c.players[id]
		low, high := s.ConfidenceInterval95()
		rows = append(rows, Row{
			PlayerID:        id,
			Hands:           s.Hands,
			BBPerHand:       s.Mean(),
			Low:             low,
			High:            high,
			ShowdownWins:    s.ShowdownWins,
			NonShowdownWins: s.NonShowdownWins,
		})
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.BBPerHand > b.BBPerHand:
			return -1
		case a.BBPerHand < b.BBPerHand:
			return 1
		}
		return 0
	})
	return rows
}

// Player returns a copy of one player's statistics.
func (c *Collector) Player(id string) (Statistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.players[id]
	if !ok {
		return Statistics{}, false
	}
	out := *s
	out.Values = slices.Clone(s.Values)
	out.Positions = maps.Clone(s.Positions)
	return out, true
}
