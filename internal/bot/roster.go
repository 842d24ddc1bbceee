package bot

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
)

// Roster answers decisions for every player at a table by dispatching to
// that player's strategy.
type Roster struct {
	mu         sync.Mutex
	strategies map[string]Strategy
	games      []game.Variant
	rng        *rand.Rand
	logger     *log.Logger
}

// NewRoster creates an empty roster. games are the variants offered to the
// dealer in a mixed game.
func NewRoster(rng *rand.Rand, logger *log.Logger, games ...game.Variant) *Roster {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if len(games) == 0 {
		games = game.Variants
	}
	return &Roster{
		strategies: make(map[string]Strategy),
		games:      games,
		rng:        rng,
		logger:     logger.WithPrefix("bot"),
	}
}

// Add seats a strategy for a player.
func (r *Roster) Add(playerID string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[playerID] = s
}

// Strategy returns the strategy playing for a player.
func (r *Roster) Strategy(playerID string) (Strategy, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.strategies[playerID]
	return s, ok
}

// DesiredGameType lets the dealer's strategy choose, or picks at random.
func (r *Roster) DesiredGameType(_ context.Context, dealerID string) game.Variant {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chooser, ok := r.strategies[dealerID].(GameChooser); ok {
		v := chooser.ChooseGame(r.games)
		r.logger.Debug("Dealer chose game", "dealer", dealerID, "game", v)
		return v
	}
	return r.games[r.rng.IntN(len(r.games))]
}

// DesiredOption asks the player's strategy for an option.
func (r *Roster) DesiredOption(ctx context.Context, req game.DecisionRequest) (game.Option, error) {
	if err := ctx.Err(); err != nil {
		return game.Option{}, err
	}

	// Strategies share the roster's random source.
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.strategies[req.PlayerID]
	if !ok {
		return game.Option{}, fmt.Errorf("no strategy for player %s", req.PlayerID)
	}
	d := s.Decide(req)
	r.logger.Debug("Bot decision", "player", req.PlayerID, "street", req.Snapshot.Street, "option", d.Option, "reasoning", d.Reasoning)
	return d.Option, nil
}

// Discard keeps the two hole cards ranked highest on the starting hand
// chart and throws away the first of the others.
func (r *Roster) Discard(_ context.Context, _ string, hole []deck.Card) int {
	if len(hole) <= 2 {
		return game.LowestCard(hole)
	}
	i, j := deck.BestStartingPair(hole)
	for k := range hole {
		if k != i && k != j {
			return k
		}
	}
	return game.LowestCard(hole)
}
