package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/pokertable/internal/deck"
)

// ErrInvalidHand is returned for card sets that cannot be evaluated.
var ErrInvalidHand = errors.New("invalid hand")

// Classify returns the category of exactly five cards from a standard deck.
func Classify(cards []deck.Card) (Category, error) {
	return StandardRanking.Classify(cards)
}

// MustClassify is Classify for known-good input. It panics on error.
func MustClassify(cards []deck.Card) Category {
	c, err := Classify(cards)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the category of exactly five cards under this ranking.
func (r Ranking) Classify(cards []deck.Card) (Category, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("%w: need 5 cards, got %d", ErrInvalidHand, len(cards))
	}
	if err := checkDistinct(cards); err != nil {
		return 0, err
	}
	return classify(cards, r.low()), nil
}

func classify(cards []deck.Card, low deck.Rank) Category {
	var rankCounts [deck.Ace + 1]int
	var suitCounts [len(deck.Suits)]int
	ranks := make([]deck.Rank, 0, len(cards))

	for _, c := range cards {
		if rankCounts[c.Rank] == 0 {
			ranks = append(ranks, c.Rank)
		}
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	flush := false
	for _, n := range suitCounts {
		if n == len(cards) {
			flush = true
		}
	}

	var high deck.Rank
	straight := false
	if len(ranks) == 5 {
		high, straight = StraightHigh(ranks, low)
	}

	var quads, trips, pairs int
	for _, r := range ranks {
		switch rankCounts[r] {
		case 4:
			quads++
		case 3:
			trips++
		case 2:
			pairs++
		}
	}

	switch {
	case straight && flush && high == deck.Ace:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	case quads > 0:
		return FourOfAKind
	case trips > 0 && pairs > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips > 0:
		return ThreeOfAKind
	case pairs > 1:
		return TwoPair
	case pairs == 1:
		return Pair
	default:
		return HighCard
	}
}

// StraightHigh returns the high card of the best straight formed by the
// distinct ranks given. An ace also plays below low, so the lowest straight
// (A-2-3-4-5, or A-6-7-8-9 in a short deck) is reported with low+3 as its
// high card and loses to every other straight.
func StraightHigh(ranks []deck.Rank, low deck.Rank) (deck.Rank, bool) {
	var present [deck.Ace + 1]bool
	for _, r := range ranks {
		if r >= deck.Two && r <= deck.Ace {
			present[r] = true
		}
	}

	for high := deck.Ace; high >= low+4; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}
		if run {
			return high, true
		}
	}

	if present[deck.Ace] {
		for r := low; r <= low+3; r++ {
			if !present[r] {
				return 0, false
			}
		}
		return low + 3, true
	}
	return 0, false
}

func checkDistinct(cards []deck.Card) error {
	seen := make(map[deck.Card]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
