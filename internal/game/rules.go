package game

import (
	"errors"
	"fmt"
	"time"
)

// Rules are the fixed stakes and format of a table.
type Rules struct {
	SmallBlind int
	BigBlind   int
	Ante       int
	MaxSeats   int
	// MinChip is the smallest chip denomination; bets and raises are
	// rounded down to a multiple of it.
	MinChip int
	Game    Variant
	// DecisionTimeout bounds each player decision. Zero waits forever.
	DecisionTimeout time.Duration
	// Prizes are paid by finishing place, first place first.
	Prizes []int
	// Strict panics on a chip accounting violation instead of failing the hand.
	Strict bool
}

// DefaultRules returns a six-max Hold'em table at 5/10.
func DefaultRules() Rules {
	return Rules{
		SmallBlind:      5,
		BigBlind:        10,
		MaxSeats:        6,
		MinChip:         1,
		Game:            Holdem,
		DecisionTimeout: 10 * time.Second,
	}
}

// Validate checks the rules are playable.
func (r Rules) Validate() error {
	var errs []error
	if r.MinChip <= 0 {
		errs = append(errs, errors.New("min chip must be positive"))
	}
	if r.SmallBlind <= 0 || r.BigBlind <= 0 {
		errs = append(errs, errors.New("blinds must be positive"))
	}
	if r.SmallBlind > r.BigBlind {
		errs = append(errs, fmt.Errorf("small blind %d exceeds big blind %d", r.SmallBlind, r.BigBlind))
	}
	if r.Ante < 0 {
		errs = append(errs, errors.New("ante cannot be negative"))
	}
	if r.MaxSeats < 2 {
		errs = append(errs, fmt.Errorf("max seats must be at least 2, got %d", r.MaxSeats))
	}
	if r.Game == "" {
		errs = append(errs, errors.New("game type is required"))
	} else if !r.Game.Playable() && r.Game != Mixed {
		errs = append(errs, fmt.Errorf("unknown game type %q", r.Game))
	} else if limit := r.seatLimit(); r.MaxSeats > limit {
		errs = append(errs, fmt.Errorf("%s deals at most %d players, table has %d seats", r.Game, limit, r.MaxSeats))
	}
	if r.DecisionTimeout < 0 {
		errs = append(errs, errors.New("decision timeout cannot be negative"))
	}
	for i, p := range r.Prizes {
		if p < 0 {
			errs = append(errs, fmt.Errorf("prize %d is negative", i+1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(errs...))
	}
	return nil
}

func (r Rules) seatLimit() int {
	if r.Game != Mixed {
		return r.Game.MaxPlayers()
	}
	limit := Holdem.MaxPlayers()
	for _, v := range Variants {
		limit = min(limit, v.MaxPlayers())
	}
	return limit
}
