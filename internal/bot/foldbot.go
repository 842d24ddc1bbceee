package bot

import "github.com/lox/pokertable/internal/game"

// FoldBot checks when it can and folds otherwise.
type FoldBot struct{}

// NewFoldBot creates a FoldBot.
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (f *FoldBot) Decide(req game.DecisionRequest) Decision {
	return decide(req.Legal, "fold-bot", game.Check, game.Fold)
}
