package game

import (
	"fmt"
	"slices"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
)

// Winner is a player's share of one pot.
type Winner struct {
	PlayerID string            `json:"player_id"`
	Amount   int               `json:"amount"`
	Hand     *evaluator.Result `json:"-"`
	Category string            `json:"category,omitempty"`
	Cards    []deck.Card       `json:"cards,omitempty"`
}

// PotResult records how one pot layer was awarded.
type PotResult struct {
	Index       int      `json:"index"`
	Amount      int      `json:"amount"`
	Eligible    []string `json:"eligible"`
	Winners     []Winner `json:"winners"`
	Uncontested bool     `json:"uncontested,omitempty"`
}

// payout awards every pot layer. A layer with one eligible player goes to
// them; otherwise the best hands split it. Odd chips go one at a time to
// the winners closest to the left of the button.
func (h *Hand) payout() error {
	hands := make(map[string]evaluator.Result)
	pots := h.ledger.Pots()
	awarded := 0

	for i, layer := range pots {
		if layer.Amount == 0 {
			continue
		}
		contenders := h.contendersFor(layer)
		if len(contenders) == 0 {
			return fmt.Errorf("%w: pot %d of %d chips has no eligible players", ErrChipMismatch, i, layer.Amount)
		}

		res := PotResult{Index: i, Amount: layer.Amount, Eligible: slices.Clone(layer.Eligible)}
		winners := contenders
		if len(contenders) == 1 {
			res.Uncontested = true
		} else {
			h.result.Showdown = true
			var err error
			winners, err = h.bestHands(contenders, hands)
			if err != nil {
				return err
			}
		}

		for j, share := range splitPot(layer.Amount, len(winners)) {
			p := winners[j]
			p.Chips += share
			awarded += share
			w := Winner{PlayerID: p.ID, Amount: share}
			if hand, ok := hands[p.ID]; ok {
				w.Hand = &hand
				w.Category = hand.Category.String()
				w.Cards = hand.Cards
			}
			res.Winners = append(res.Winners, w)
		}

		h.result.Pots = append(h.result.Pots, res)
		h.logger.Debug("Pot awarded", "pot", i, "amount", layer.Amount, "winners", len(winners))
	}

	if awarded != h.ledger.Total() {
		err := fmt.Errorf("%w: awarded %d of %d chips", ErrChipMismatch, awarded, h.ledger.Total())
		h.logger.Error("Chip accounting failed", "error", err)
		if h.rules.Strict {
			panic(err)
		}
		return err
	}

	if h.result.Showdown {
		h.street = Showdown
	}
	for i := range h.result.Pots {
		res := h.result.Pots[i]
		h.publish(Event{Type: EventPotResolved, Pot: &res})
	}
	return nil
}

// contendersFor returns the players who can win a layer, ordered from the
// seat left of the button.
func (h *Hand) contendersFor(layer Layer) []*Player {
	n := len(h.players)
	var out []*Player
	for i := 1; i <= n; i++ {
		p := h.players[(h.dealer+i)%n]
		if p.InHand() && layer.IsEligible(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (h *Hand) bestHands(contenders []*Player, cache map[string]evaluator.Result) ([]*Player, error) {
	rule, ranking := h.Variant.Rule(), h.Variant.Ranking()

	var winners []*Player
	var best evaluator.Result
	for _, p := range contenders {
		hand, ok := cache[p.ID]
		if !ok {
			cards := append(slices.Clone(p.HoleCards), h.board...)
			var err error
			hand, err = evaluator.Analyze(cards, rule, ranking)
			if err != nil {
				return nil, fmt.Errorf("evaluate %s: %w", p.ID, err)
			}
			cache[p.ID] = hand
		}

		if winners == nil {
			winners, best = []*Player{p}, hand
			continue
		}
		switch c := ranking.Compare(hand, best); {
		case c > 0:
			winners, best = []*Player{p}, hand
		case c == 0:
			winners = append(winners, p)
		}
	}
	return winners, nil
}

// splitPot divides amount between n winners. Earlier winners receive the
// odd chips.
func splitPot(amount, n int) []int {
	if n <= 0 {
		return nil
	}
	shares := make([]int, n)
	for i := range shares {
		shares[i] = amount / n
	}
	for i := 0; i < amount%n; i++ {
		shares[i]++
	}
	return shares
}
