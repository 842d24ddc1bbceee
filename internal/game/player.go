package game

import "github.com/lox/pokertable/internal/deck"

// Player is a seated player. Players persist across hands; hand state is
// reset at every hand start.
type Player struct {
	ID         string
	Name       string
	Chips      int
	SittingOut bool

	Folded    bool
	HoleCards []deck.Card
	// Committed is the chips put in during the current street, blinds included.
	Committed int
	// HandCommitted is the chips put in during the whole hand, antes included.
	HandCommitted int
	// Acted is false until the player takes a voluntary action this street.
	// Posting a blind is not an action.
	Acted bool
}

// NewPlayer creates a player with a starting stack.
func NewPlayer(id, name string, chips int) *Player {
	if name == "" {
		name = id
	}
	return &Player{ID: id, Name: name, Chips: chips}
}

// InHand reports whether the player still contests the hand.
func (p *Player) InHand() bool {
	return !p.Folded && !p.SittingOut
}

// CanAct reports whether the player is in the hand with chips behind.
func (p *Player) CanAct() bool {
	return p.InHand() && p.Chips > 0
}

// IsAllIn reports whether the player is in the hand with no chips behind.
func (p *Player) IsAllIn() bool {
	return p.InHand() && p.Chips == 0 && p.HandCommitted > 0
}

func (p *Player) resetForHand() {
	p.Folded = false
	p.HoleCards = nil
	p.Committed = 0
	p.HandCommitted = 0
	p.Acted = false
}

func (p *Player) resetForStreet() {
	p.Committed = 0
	p.Acted = false
}
