package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokertable/internal/game"
)

// TAGBot is tight-aggressive: it raises premium starting hands, checks when
// free and calls other bets only some of the time.
type TAGBot struct {
	rng *rand.Rand
}

// NewTAGBot creates a TAGBot.
func NewTAGBot(rng *rand.Rand) *TAGBot {
	return &TAGBot{rng: rng}
}

func (t *TAGBot) Decide(req game.DecisionRequest) Decision {
	me := self(req)

	if req.Snapshot.Street == game.Preflop && premium(startingHand(me.HoleCards)) {
		if l, ok := raiseOrBet(req.Legal); ok {
			amount := l.Min + (l.Max-l.Min)/4
			return Decision{Option: game.Option{Type: l.Type, Amount: amount}, Reasoning: "TAG raise premium"}
		}
		return decide(req.Legal, "TAG call premium", game.Call, game.Check)
	}

	if has(req.Legal, game.Check) {
		return decide(req.Legal, "TAG check", game.Check)
	}
	if t.rng.Float64() < 0.3 {
		return decide(req.Legal, "TAG call", game.Call)
	}
	return decide(req.Legal, "TAG fold", game.Fold)
}
