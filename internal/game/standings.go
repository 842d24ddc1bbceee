package game

import (
	"cmp"
	"slices"
	"sync"
)

// Place is a finishing position in a tournament.
type Place struct {
	Position int    `json:"position"`
	PlayerID string `json:"player_id"`
	Chips    int    `json:"chips"`
	Prize    int    `json:"prize,omitempty"`
}

// Standings records the order players were eliminated or left and maps
// finishing places to the prize schedule.
type Standings struct {
	mu     sync.Mutex
	prizes []int
	// out holds one step per elimination or departure, oldest first.
	out [][]Place
}

// NewStandings creates standings paying prizes by place.
func NewStandings(prizes []int) *Standings {
	return &Standings{prizes: slices.Clone(prizes)}
}

// Eliminate records players knocked out in the same hand. They share the
// ordering of a single elimination step.
func (s *Standings) Eliminate(ids ...string) {
	if len(ids) == 0 {
		return
	}
	step := make([]Place, len(ids))
	for i, id := range ids {
		step[i] = Place{PlayerID: id}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, step)
}

// Leave records a player who left the table holding chips. They place
// behind everyone still playing and ahead of anyone already out.
func (s *Standings) Leave(id string, chips int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, []Place{{PlayerID: id, Chips: chips}})
}

// Eliminated returns how many players have busted.
func (s *Standings) Eliminated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, step := range s.out {
		for _, p := range step {
			if p.Chips == 0 {
				n++
			}
		}
	}
	return n
}

// Places ranks the remaining players by chips, then the players who are
// out with the most recent first.
func (s *Standings) Places(remaining []*Player) []Place {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := slices.Clone(remaining)
	slices.SortStableFunc(alive, func(a, b *Player) int {
		return cmp.Compare(b.Chips, a.Chips)
	})

	var places []Place
	for _, p := range alive {
		places = append(places, Place{PlayerID: p.ID, Chips: p.Chips})
	}
	for i := len(s.out) - 1; i >= 0; i-- {
		places = append(places, s.out[i]...)
	}

	for i := range places {
		places[i].Position = i + 1
		if i < len(s.prizes) {
			places[i].Prize = s.prizes[i]
		}
	}
	return places
}
