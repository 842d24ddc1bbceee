package evaluator

import (
	"fmt"

	"github.com/lox/pokertable/internal/deck"
)

// Rule expands a player's full card set (hole cards first, then the board)
// into the five card combinations the variant allows them to play.
type Rule func(cards []deck.Card) ([][]deck.Card, error)

// OmahaHoleCards is the number of hole cards dealt in Omaha.
const OmahaHoleCards = 4

// AnyFive lets a player use any five of their cards (Hold'em, Pineapple,
// short deck).
func AnyFive(cards []deck.Card) ([][]deck.Card, error) {
	if len(cards) < 5 {
		return nil, fmt.Errorf("%w: need at least 5 cards, got %d", ErrInvalidHand, len(cards))
	}
	return Combinations(cards, 5), nil
}

// Omaha requires exactly two of the four hole cards and exactly three
// board cards.
func Omaha(cards []deck.Card) ([][]deck.Card, error) {
	if len(cards) < OmahaHoleCards+3 {
		return nil, fmt.Errorf("%w: omaha needs 4 hole cards and at least 3 board cards, got %d cards", ErrInvalidHand, len(cards))
	}

	hole := Combinations(cards[:OmahaHoleCards], 2)
	board := Combinations(cards[OmahaHoleCards:], 3)

	out := make([][]deck.Card, 0, len(hole)*len(board))
	for _, h := range hole {
		for _, b := range board {
			combo := make([]deck.Card, 0, 5)
			combo = append(combo, h...)
			out = append(out, append(combo, b...))
		}
	}
	return out, nil
}
