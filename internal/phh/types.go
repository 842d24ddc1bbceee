// Package phh converts finished hands to the Poker Hand History format and
// records them to disk.
package phh

import (
	"time"

	"github.com/lox/pokertable/internal/game"
)

// HandHistory is a single hand in PHH TOML form.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// Variant codes. Pineapple has no registered code and is written as a
// hold'em variant with a discard action.
var variantCodes = map[game.Variant]string{
	game.Holdem:    "NT",
	game.Pineapple: "NT",
	game.Omaha:     "NO",
	game.ShortDeck: "NS",
}

// VariantCode returns the PHH code for a variant.
func VariantCode(v game.Variant) string {
	if code, ok := variantCodes[v]; ok {
		return code
	}
	return "NT"
}
