package bot

import (
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
)

// ChartBot plays a push-fold chart preflop and checks or calls after.
// Short stacks shove hands in the top of the percentile chart; everything
// else calls only cheap bets.
type ChartBot struct {
	// PushPercentile is the minimum starting hand percentile to shove.
	PushPercentile float64
	// PushDepth is the deepest stack, in big blinds, that shoves.
	PushDepth float64
}

// NewChartBot creates a ChartBot that shoves the top 15% of hands at 20
// big blinds or fewer.
func NewChartBot() *ChartBot {
	return &ChartBot{PushPercentile: 0.85, PushDepth: 20}
}

func (c *ChartBot) Decide(req game.DecisionRequest) Decision {
	snap := req.Snapshot
	me := self(req)

	if snap.Street == game.Preflop {
		hand := startingHand(me.HoleCards)
		strong := deck.GetHandPercentile(hand) >= c.PushPercentile
		if strong && bigBlinds(me.Chips+me.Committed, snap) <= c.PushDepth && has(req.Legal, game.AllIn) {
			return decide(req.Legal, "chart-bot push", game.AllIn)
		}
		if strong {
			return decide(req.Legal, "chart-bot calling strong hand", game.Check, game.Call)
		}
		if owes(req.Legal) > snap.BigBlind {
			return decide(req.Legal, "chart-bot folding to raise", game.Check, game.Fold)
		}
	}

	return decide(req.Legal, "chart-bot calling", game.Check, game.Call)
}

// ChooseGame prefers hold'em, where the chart applies directly.
func (c *ChartBot) ChooseGame(options []game.Variant) game.Variant {
	for _, v := range options {
		if v == game.Holdem {
			return v
		}
	}
	return options[0]
}
