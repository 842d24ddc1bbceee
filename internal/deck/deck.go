package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Kind selects which cards make up a deck.
type Kind int

const (
	// Standard is the 52 card deck.
	Standard Kind = iota
	// Short is the 36 card deck with Two through Five removed.
	Short
)

// LowRank returns the lowest rank present in a deck of this kind.
func (k Kind) LowRank() Rank {
	if k == Short {
		return Six
	}
	return Two
}

// Size returns the number of cards in a full deck of this kind.
func (k Kind) Size() int {
	return len(Suits) * int(Ace-k.LowRank()+1)
}

func (k Kind) String() string {
	if k == Short {
		return "short"
	}
	return "standard"
}

// Deck is a shuffled draw source. Cards are drawn from the top.
type Deck struct {
	cards []Card
	kind  Kind
}

// New returns a shuffled deck of the given kind using rng.
func New(rng *rand.Rand, kind Kind) *Deck {
	d := &Deck{cards: FullDeck(kind), kind: kind}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewStacked returns a deck that deals the given cards in order.
func NewStacked(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// FullDeck returns every card of a deck kind in suit then rank order.
func FullDeck(kind Kind) []Card {
	cards := make([]Card, 0, kind.Size())
	for _, suit := range Suits {
		for rank := kind.LowRank(); rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Draw removes and returns the top card. Drawing from an empty deck
// means the dealer lost track of cards and panics.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		panic(fmt.Sprintf("deck: draw from empty %s deck", d.kind))
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// DrawN draws n cards.
func (d *Deck) DrawN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.Draw()
	}
	return cards
}

// Burn discards the top card.
func (d *Deck) Burn() {
	d.Draw()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Kind returns the deck kind.
func (d *Deck) Kind() Kind {
	return d.kind
}
