package game

import (
	"context"
	"time"

	"github.com/lox/pokertable/internal/deck"
)

// DecisionRequest asks a player to choose one of their legal options.
type DecisionRequest struct {
	PlayerID string
	Legal    []LegalOption
	Timeout  time.Duration
	Snapshot Snapshot
}

// Decider supplies player decisions. The returned option should be a member
// of the legal set; amounts outside its bounds are clamped and anything
// else is replaced by the default option.
type Decider interface {
	// DesiredGameType picks the variant for a mixed game hand.
	DesiredGameType(ctx context.Context, dealerID string) Variant
	// DesiredOption picks an action for the player to act.
	DesiredOption(ctx context.Context, req DecisionRequest) (Option, error)
}

// Discarder is implemented by deciders that choose which hole card to throw
// away in Pineapple. Deciders without it discard their lowest card.
type Discarder interface {
	Discard(ctx context.Context, playerID string, hole []deck.Card) int
}

// LowestCard returns the index of the lowest ranked card.
func LowestCard(hole []deck.Card) int {
	idx := 0
	for i, c := range hole {
		if c.Rank < hole[idx].Rank {
			idx = i
		}
	}
	return idx
}
