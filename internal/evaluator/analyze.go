package evaluator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokertable/internal/deck"
)

// Result is the best five card hand found for a player.
type Result struct {
	Category Category
	// Ranks holds the five ranks of the hand in descending order.
	Ranks []deck.Rank
	// PairRanks holds ranks appearing more than once, larger groups first
	// and then by descending rank.
	PairRanks []deck.Rank
	// FullHouseRanks is the trip rank then the pair rank for a full house.
	FullHouseRanks []deck.Rank
	// Kickers holds the unpaired ranks in descending order.
	Kickers []deck.Rank
	// StraightHigh is the top of a straight, straight flush or royal flush.
	StraightHigh deck.Rank
	// Cards are the five winning cards.
	Cards []deck.Card

	ranking Ranking
}

// String returns a string representation of the hand
func (r Result) String() string {
	cardStrs := make([]string, len(r.Cards))
	for i, c := range r.Cards {
		cardStrs[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", r.Category, strings.Join(cardStrs, " "))
}

// Ranking returns the ranking the result was evaluated under.
func (r Result) Ranking() Ranking {
	return r.ranking
}

// Analyze finds the best hand in cards under rule, ordered by ranking.
func Analyze(cards []deck.Card, rule Rule, ranking Ranking) (Result, error) {
	if err := checkDistinct(cards); err != nil {
		return Result{}, err
	}
	combos, err := rule(cards)
	if err != nil {
		return Result{}, err
	}
	if len(combos) == 0 {
		return Result{}, fmt.Errorf("%w: no playable combinations", ErrInvalidHand)
	}

	var best Result
	for i, combo := range combos {
		res := describe(combo, ranking)
		if i == 0 || ranking.Compare(res, best) > 0 {
			best = res
		}
	}
	return best, nil
}

// Describe evaluates exactly five cards into a Result.
func Describe(cards []deck.Card, ranking Ranking) (Result, error) {
	if _, err := ranking.Classify(cards); err != nil {
		return Result{}, err
	}
	return describe(cards, ranking), nil
}

func describe(combo []deck.Card, ranking Ranking) Result {
	cards := slices.Clone(combo)
	slices.SortFunc(cards, func(a, b deck.Card) int {
		if a.Rank != b.Rank {
			return int(b.Rank) - int(a.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})

	res := Result{
		Category: classify(cards, ranking.low()),
		Ranks:    make([]deck.Rank, len(cards)),
		Cards:    cards,
		ranking:  ranking,
	}

	counts := make(map[deck.Rank]int, len(cards))
	for i, c := range cards {
		res.Ranks[i] = c.Rank
		counts[c.Rank]++
	}

	distinct := make([]deck.Rank, 0, len(counts))
	for r := range counts {
		distinct = append(distinct, r)
	}
	slices.SortFunc(distinct, func(a, b deck.Rank) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return int(b) - int(a)
	})

	for _, r := range distinct {
		if counts[r] > 1 {
			res.PairRanks = append(res.PairRanks, r)
		} else {
			res.Kickers = append(res.Kickers, r)
		}
	}

	switch res.Category {
	case FullHouse:
		res.FullHouseRanks = []deck.Rank{res.PairRanks[0], res.PairRanks[1]}
	case Straight, StraightFlush, RoyalFlush:
		res.StraightHigh, _ = StraightHigh(res.Ranks, ranking.low())
	}
	return res
}
