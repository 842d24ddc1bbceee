package game

import (
	"context"
	rand "math/rand/v2"
	"sync"
	"testing"

	"github.com/lox/pokertable/internal/deck"
	"github.com/stretchr/testify/require"
)

// scriptedDecider plays queued options per player, then checks when it can
// and calls otherwise.
type scriptedDecider struct {
	mu       sync.Mutex
	script   map[string][]Option
	game     Variant
	dealers  []string
	requests []DecisionRequest
	errs     map[string]error
}

func newScripted() *scriptedDecider {
	return &scriptedDecider{script: make(map[string][]Option), errs: make(map[string]error), game: Holdem}
}

func (s *scriptedDecider) then(id string, opts ...Option) *scriptedDecider {
	s.script[id] = append(s.script[id], opts...)
	return s
}

func (s *scriptedDecider) DesiredGameType(_ context.Context, dealerID string) Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dealers = append(s.dealers, dealerID)
	return s.game
}

func (s *scriptedDecider) DesiredOption(_ context.Context, req DecisionRequest) (Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)

	if err, ok := s.errs[req.PlayerID]; ok {
		return Option{}, err
	}
	if queue := s.script[req.PlayerID]; len(queue) > 0 {
		s.script[req.PlayerID] = queue[1:]
		return queue[0], nil
	}
	if _, ok := FindOption(req.Legal, Check); ok {
		return Option{Type: Check}, nil
	}
	return Option{Type: Call}, nil
}

// players builds players with the given stacks named a, b, c...
func players(stacks ...int) []*Player {
	out := make([]*Player, len(stacks))
	for i, chips := range stacks {
		id := string(rune('a' + i))
		out[i] = NewPlayer(id, "", chips)
	}
	return out
}

func stacked(t *testing.T, cards string) *deck.Deck {
	t.Helper()
	parsed, err := deck.ParseCards(cards)
	require.NoError(t, err)
	return deck.NewStacked(parsed)
}

func chips(ps []*Player) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.Chips
	}
	return out
}

func testRules() Rules {
	r := DefaultRules()
	r.DecisionTimeout = 0
	r.Strict = true
	return r
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// randomDecider picks uniformly among the legal options with a random
// amount inside the legal range.
type randomDecider struct {
	rng *rand.Rand
}

func (r *randomDecider) DesiredGameType(context.Context, string) Variant {
	return Variants[r.rng.IntN(len(Variants))]
}

func (r *randomDecider) DesiredOption(_ context.Context, req DecisionRequest) (Option, error) {
	l := req.Legal[r.rng.IntN(len(req.Legal))]
	amount := l.Min
	if l.Max > l.Min {
		amount += r.rng.IntN(l.Max - l.Min + 1)
	}
	return Option{Type: l.Type, Amount: amount}, nil
}
