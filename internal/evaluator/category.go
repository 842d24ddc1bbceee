// Package evaluator classifies and compares poker hands.
package evaluator

import "github.com/lox/pokertable/internal/deck"

// Category is the class of a five card poker hand.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Strength is the category's position in the standard ordering (1-10).
func (c Category) Strength() int {
	return int(c)
}

// ShortDeckStrength orders categories for a 36 card deck, where a flush
// beats a full house.
func (c Category) ShortDeckStrength() int {
	switch c {
	case Flush:
		return int(FullHouse)
	case FullHouse:
		return int(Flush)
	default:
		return int(c)
	}
}

// Ranking describes how hands are ordered for a particular deck.
type Ranking struct {
	Name string
	// Low is the lowest rank in the deck. An ace can play directly below it
	// to complete the lowest straight.
	Low deck.Rank
	// FlushBeatsFullHouse selects the short deck strength table.
	FlushBeatsFullHouse bool
}

var (
	// StandardRanking orders hands dealt from a 52 card deck.
	StandardRanking = Ranking{Name: "standard", Low: deck.Two}
	// ShortDeckRanking orders hands dealt from a 36 card deck.
	ShortDeckRanking = Ranking{Name: "short", Low: deck.Six, FlushBeatsFullHouse: true}
)

// RankingFor returns the ranking used with a deck kind.
func RankingFor(kind deck.Kind) Ranking {
	if kind == deck.Short {
		return ShortDeckRanking
	}
	return StandardRanking
}

// Strength returns the category strength under this ranking.
func (r Ranking) Strength(c Category) int {
	if r.FlushBeatsFullHouse {
		return c.ShortDeckStrength()
	}
	return c.Strength()
}

func (r Ranking) low() deck.Rank {
	if r.Low == 0 {
		return deck.Two
	}
	return r.Low
}
