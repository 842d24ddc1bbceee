package evaluator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lox/pokertable/internal/deck"
)

// Compare orders two results using the ranking of a.
func Compare(a, b Result) int {
	return a.ranking.Compare(a, b)
}

// Compare returns -1 if a is weaker than b, 0 if they tie and 1 if a is
// stronger.
func (r Ranking) Compare(a, b Result) int {
	if c := cmp.Compare(r.Strength(a.Category), r.Strength(b.Category)); c != 0 {
		return c
	}

	switch a.Category {
	case RoyalFlush:
		return 0
	case Straight, StraightFlush:
		return cmp.Compare(a.StraightHigh, b.StraightHigh)
	case FullHouse:
		return slices.Compare(a.FullHouseRanks, b.FullHouseRanks)
	case Pair, TwoPair, ThreeOfAKind, FourOfAKind:
		if c := slices.Compare(a.PairRanks, b.PairRanks); c != 0 {
			return c
		}
		return slices.Compare(a.Kickers, b.Kickers)
	default:
		return slices.Compare(a.Ranks, b.Ranks)
	}
}

// Explain describes why one result beats another.
func Explain(a, b Result) string {
	result := Compare(a, b)
	if result == 0 {
		return "hands tie"
	}

	winner, loser := a, b
	if result < 0 {
		winner, loser = b, a
	}

	explanation := fmt.Sprintf("%s beats %s", winner, loser)
	if winner.Category != loser.Category {
		return explanation + fmt.Sprintf(" (%s beats %s)", winner.Category, loser.Category)
	}

	switch winner.Category {
	case Straight, StraightFlush:
		return explanation + fmt.Sprintf(" with higher straight (%s-high vs %s-high)", winner.StraightHigh, loser.StraightHigh)
	case FullHouse:
		if winner.FullHouseRanks[0] != loser.FullHouseRanks[0] {
			return explanation + fmt.Sprintf(" with higher trips (%s vs %s)", winner.FullHouseRanks[0], loser.FullHouseRanks[0])
		}
		return explanation + fmt.Sprintf(" with higher pair (%s vs %s)", winner.FullHouseRanks[1], loser.FullHouseRanks[1])
	case Pair, TwoPair, ThreeOfAKind, FourOfAKind:
		if w, l, ok := firstDifference(winner.PairRanks, loser.PairRanks); ok {
			return explanation + fmt.Sprintf(" with higher %s (%s vs %s)", groupName(winner.Category), w, l)
		}
		if w, l, ok := firstDifference(winner.Kickers, loser.Kickers); ok {
			return explanation + fmt.Sprintf(" with higher kicker (%s vs %s)", w, l)
		}
	default:
		if w, l, ok := firstDifference(winner.Ranks, loser.Ranks); ok {
			return explanation + fmt.Sprintf(" with higher card (%s vs %s)", w, l)
		}
	}
	return explanation
}

func groupName(c Category) string {
	switch c {
	case ThreeOfAKind:
		return "trips"
	case FourOfAKind:
		return "quads"
	default:
		return "pair"
	}
}

func firstDifference(a, b []deck.Rank) (deck.Rank, deck.Rank, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i], b[i], true
		}
	}
	return 0, 0, false
}
