package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokertable/internal/game"
)

// ManiacBot bets and shoves relentlessly and rarely folds.
type ManiacBot struct {
	rng *rand.Rand
}

// NewManiacBot creates a ManiacBot.
func NewManiacBot(rng *rand.Rand) *ManiacBot {
	return &ManiacBot{rng: rng}
}

func (m *ManiacBot) Decide(req game.DecisionRequest) Decision {
	me := self(req)
	aggro, canAggro := raiseOrBet(req.Legal)
	canShove := has(req.Legal, game.AllIn)

	if has(req.Legal, game.Check) {
		if m.rng.Float64() >= 0.85 {
			return decide(req.Legal, "maniac checking", game.Check)
		}
		if (bigBlinds(me.Chips, req.Snapshot) <= 20 || m.rng.Float64() < 0.3) && canShove {
			return decide(req.Legal, "maniac shove", game.AllIn)
		}
		if canAggro {
			amount := aggro.Min + (aggro.Max-aggro.Min)*3/4
			return Decision{Option: game.Option{Type: aggro.Type, Amount: amount}, Reasoning: "maniac big bet"}
		}
		return decide(req.Legal, "maniac checking", game.Check)
	}

	r := m.rng.Float64()
	if r < 0.4 && canShove {
		return decide(req.Legal, "maniac shove over bet", game.AllIn)
	}
	if r < 0.8 {
		return decide(req.Legal, "maniac call", game.Call, game.AllIn)
	}
	return decide(req.Legal, "maniac fold", game.Fold)
}

// ChooseGame picks omaha for the bigger pots.
func (m *ManiacBot) ChooseGame(options []game.Variant) game.Variant {
	for _, v := range options {
		if v == game.Omaha {
			return v
		}
	}
	return options[m.rng.IntN(len(options))]
}
