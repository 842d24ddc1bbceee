package game

import "fmt"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return streetNames[s]
}

// MarshalText encodes the street name.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name.
func (s *Street) UnmarshalText(b []byte) error {
	for i, name := range streetNames {
		if name == string(b) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", b)
}

// OptionType is the kind of action a player takes.
type OptionType int

const (
	Fold OptionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var optionNames = [...]string{"fold", "check", "call", "bet", "raise", "allin"}

func (o OptionType) String() string {
	if o < Fold || o > AllIn {
		return "unknown"
	}
	return optionNames[o]
}

// MarshalText encodes the option name.
func (o OptionType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an option name.
func (o *OptionType) UnmarshalText(b []byte) error {
	t, err := ParseOptionType(string(b))
	if err != nil {
		return err
	}
	*o = t
	return nil
}

// ParseOptionType returns the option type for a name such as "raise".
func ParseOptionType(s string) (OptionType, error) {
	for i, name := range optionNames {
		if name == s {
			return OptionType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown option %q", ErrIllegalOption, s)
}

// Option is a player's chosen action. Amount is the number of chips the
// player adds to the pot with it.
type Option struct {
	Type   OptionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

func (o Option) String() string {
	if o.Amount == 0 {
		return o.Type.String()
	}
	return fmt.Sprintf("%s %d", o.Type, o.Amount)
}

// LegalOption is an action currently available to the acting player.
// Min and Max bound the chips added; Total is the player's street
// contribution after taking the option at Min.
type LegalOption struct {
	Type  OptionType `json:"type"`
	Min   int        `json:"min,omitempty"`
	Max   int        `json:"max,omitempty"`
	Total int        `json:"total,omitempty"`
}

// Clamp bounds amount to the option's range. Bets and raises below the
// maximum are rounded down to a multiple of chip.
func (l LegalOption) Clamp(amount, chip int) int {
	switch l.Type {
	case Bet, Raise:
	default:
		return l.Min
	}
	if amount >= l.Max {
		return l.Max
	}
	if chip > 1 {
		amount -= amount % chip
	}
	return max(amount, l.Min)
}

// FindOption returns the legal option of the given type.
func FindOption(legal []LegalOption, t OptionType) (LegalOption, bool) {
	for _, l := range legal {
		if l.Type == t {
			return l, true
		}
	}
	return LegalOption{}, false
}

// DefaultOption is applied when a player times out or answers with
// something unusable: check when possible, otherwise fold.
func DefaultOption(legal []LegalOption) Option {
	if _, ok := FindOption(legal, Check); ok {
		return Option{Type: Check}
	}
	return Option{Type: Fold}
}
