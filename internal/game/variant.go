package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
)

// Variant is the poker game dealt for a hand.
type Variant string

const (
	Holdem    Variant = "holdem"
	Pineapple Variant = "pineapple"
	Omaha     Variant = "omaha"
	ShortDeck Variant = "shortdeck"
	// Mixed is a table setting: the dealer picks the variant every hand.
	Mixed Variant = "mixed"
)

// Variants lists every dealable variant.
var Variants = []Variant{Holdem, Pineapple, Omaha, ShortDeck}

// ParseVariant parses a variant or the mixed table setting.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case Holdem, Pineapple, Omaha, ShortDeck, Mixed:
		return v, nil
	case "hold'em", "texas":
		return Holdem, nil
	case "short", "short-deck", "sixplus":
		return ShortDeck, nil
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

// Playable reports whether hands can be dealt in this variant.
func (v Variant) Playable() bool {
	switch v {
	case Holdem, Pineapple, Omaha, ShortDeck:
		return true
	}
	return false
}

// HoleCards returns how many cards each player is dealt.
func (v Variant) HoleCards() int {
	switch v {
	case Pineapple:
		return 3
	case Omaha:
		return evaluator.OmahaHoleCards
	default:
		return 2
	}
}

// Discards returns how many hole cards each player throws away after the
// preflop betting.
func (v Variant) Discards() int {
	if v == Pineapple {
		return 1
	}
	return 0
}

// DeckKind returns the deck the variant is dealt from.
func (v Variant) DeckKind() deck.Kind {
	if v == ShortDeck {
		return deck.Short
	}
	return deck.Standard
}

// Rule returns the combination rule for making a five card hand.
func (v Variant) Rule() evaluator.Rule {
	if v == Omaha {
		return evaluator.Omaha
	}
	return evaluator.AnyFive
}

// Ranking returns how hands are ordered in this variant.
func (v Variant) Ranking() evaluator.Ranking {
	return evaluator.RankingFor(v.DeckKind())
}

// MaxPlayers is the largest table the variant's deck can deal a full hand to.
func (v Variant) MaxPlayers() int {
	board := 5 + 3 // community cards and burns
	return (v.DeckKind().Size() - board) / v.HoleCards()
}
