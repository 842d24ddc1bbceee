package game

import (
	"slices"
	"time"

	"github.com/lox/pokertable/internal/deck"
)

// Snapshot is a read-only copy of table state, safe to hand to other
// goroutines and to serialize.
type Snapshot struct {
	TableID  string        `json:"table_id"`
	HandID   string        `json:"hand_id,omitempty"`
	Variant  Variant       `json:"variant,omitempty"`
	Street   Street        `json:"street"`
	Board    []deck.Card   `json:"board"`
	Dealer   string        `json:"dealer,omitempty"`
	BigBlind int           `json:"big_blind"`
	Players  []PlayerView  `json:"players"`
	Pots     []PotView     `json:"pots"`
	Actor    string        `json:"actor,omitempty"`
	Legal    []LegalOption `json:"legal,omitempty"`
	TimeLeft time.Duration `json:"time_left,omitempty"`
}

// PlayerView is one player in a snapshot.
type PlayerView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Seat       int         `json:"seat"`
	Chips      int         `json:"chips"`
	Committed  int         `json:"committed"`
	Folded     bool        `json:"folded,omitempty"`
	SittingOut bool        `json:"sitting_out,omitempty"`
	AllIn      bool        `json:"all_in,omitempty"`
	HoleCards  []deck.Card `json:"hole_cards,omitempty"`
}

// PotView is one pot layer in a snapshot.
type PotView struct {
	Amount   int      `json:"amount"`
	Owed     int      `json:"owed,omitempty"`
	Eligible []string `json:"eligible"`
	Archived bool     `json:"archived,omitempty"`
}

// PotTotal returns the chips in every pot.
func (s Snapshot) PotTotal() int {
	total := 0
	for _, p := range s.Pots {
		total += p.Amount
	}
	return total
}

// Player returns the view of a player by ID.
func (s Snapshot) Player(id string) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}

// ForPlayer returns a copy of the snapshot showing only the given player's
// hole cards. At showdown the cards of players still in the hand are shown.
func (s Snapshot) ForPlayer(id string) Snapshot {
	out := s
	out.Board = slices.Clone(s.Board)
	out.Legal = slices.Clone(s.Legal)
	out.Pots = slices.Clone(s.Pots)
	out.Players = make([]PlayerView, len(s.Players))
	for i, p := range s.Players {
		visible := p.ID == id || (s.Street == Showdown && !p.Folded)
		if visible {
			p.HoleCards = slices.Clone(p.HoleCards)
		} else {
			p.HoleCards = nil
		}
		out.Players[i] = p
	}
	return out
}

// Public returns the snapshot as seen by a spectator.
func (s Snapshot) Public() Snapshot {
	return s.ForPlayer("")
}
