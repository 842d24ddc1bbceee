package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokertable/internal/game"
)

// RandBot picks uniformly among legal options, with a uniform amount for
// bets and raises.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a RandBot.
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(req game.DecisionRequest) Decision {
	if len(req.Legal) == 0 {
		return Decision{Option: game.Option{Type: game.Fold}, Reasoning: "rand-bot no legal options"}
	}

	l := req.Legal[r.rng.IntN(len(req.Legal))]
	amount := l.Min
	if (l.Type == game.Bet || l.Type == game.Raise) && l.Max > l.Min {
		amount += r.rng.IntN(l.Max - l.Min + 1)
	}
	return Decision{Option: game.Option{Type: l.Type, Amount: amount}, Reasoning: "rand-bot random action"}
}

// ChooseGame picks any of the offered variants.
func (r *RandBot) ChooseGame(options []game.Variant) game.Variant {
	return options[r.rng.IntN(len(options))]
}
