package bot

import "github.com/lox/pokertable/internal/game"

// CallBot checks and calls down. It gives up on the river facing a bet of
// most of the pot and shoves a short stack when nobody has raised.
type CallBot struct{}

// NewCallBot creates a CallBot.
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (c *CallBot) Decide(req game.DecisionRequest) Decision {
	snap := req.Snapshot
	toCall := owes(req.Legal)

	if snap.Street == game.River && toCall > 0 {
		// The pot already includes the bet being faced.
		if before := snap.PotTotal() - toCall; before > 0 && float64(toCall) > 0.8*float64(before) {
			return decide(req.Legal, "call-bot folding river to large bet", game.Fold)
		}
	}

	me := self(req)
	if bigBlinds(me.Chips, snap) < 10 && toCall <= snap.BigBlind && has(req.Legal, game.AllIn) {
		return decide(req.Legal, "call-bot shoving short stack", game.AllIn)
	}

	return decide(req.Legal, "call-bot calling", game.Check, game.Call)
}
