// Package bot provides built-in player strategies and a Roster that seats
// them behind the game.Decider interface.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
)

// Strategy picks an option for one decision.
type Strategy interface {
	Decide(req game.DecisionRequest) Decision
}

// Decision is a strategy's chosen option with a short explanation for logs.
type Decision struct {
	Option    game.Option
	Reasoning string
}

// GameChooser is implemented by strategies with a preferred variant when
// they hold the button in a mixed game.
type GameChooser interface {
	ChooseGame(options []game.Variant) game.Variant
}

// Names lists the built-in strategies.
var Names = []string{"call", "chart", "fold", "maniac", "random", "tag"}

// New creates a built-in strategy by name. rng drives the randomised
// strategies.
func New(name string, rng *rand.Rand) (Strategy, error) {
	switch strings.ToLower(name) {
	case "call", "callbot":
		return NewCallBot(), nil
	case "chart", "chartbot":
		return NewChartBot(), nil
	case "fold", "foldbot":
		return NewFoldBot(), nil
	case "maniac", "maniacbot":
		return NewManiacBot(rng), nil
	case "random", "rand", "randbot":
		return NewRandBot(rng), nil
	case "tag", "tagbot":
		return NewTAGBot(rng), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(Names, ", "))
}

// decide returns the legal option of the first type available, falling back
// to the default option.
func decide(legal []game.LegalOption, reasoning string, prefer ...game.OptionType) Decision {
	for _, t := range prefer {
		if l, ok := game.FindOption(legal, t); ok {
			return Decision{Option: game.Option{Type: t, Amount: l.Min}, Reasoning: reasoning}
		}
	}
	return Decision{Option: game.DefaultOption(legal), Reasoning: "fallback: " + reasoning}
}

func has(legal []game.LegalOption, t game.OptionType) bool {
	_, ok := game.FindOption(legal, t)
	return ok
}

// self returns the acting player's view from the request snapshot.
func self(req game.DecisionRequest) game.PlayerView {
	p, _ := req.Snapshot.Player(req.PlayerID)
	return p
}

// owes returns the chips needed to call.
func owes(legal []game.LegalOption) int {
	if call, ok := game.FindOption(legal, game.Call); ok {
		return call.Min
	}
	return 0
}

// bigBlinds returns a stack measured in big blinds.
func bigBlinds(chips int, snap game.Snapshot) float64 {
	if snap.BigBlind <= 0 {
		return 0
	}
	return float64(chips) / float64(snap.BigBlind)
}

// premium reports whether two hole cards are TT+ or AQ+.
func premium(hole []deck.Card) bool {
	if len(hole) != 2 {
		return false
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return hi >= deck.Ten
	}
	return hi == deck.Ace && lo >= deck.Queen
}

// startingHand picks the best two hole cards for preflop charts in games
// dealing more than two.
func startingHand(hole []deck.Card) []deck.Card {
	if len(hole) <= 2 {
		return hole
	}
	i, j := deck.BestStartingPair(hole)
	return []deck.Card{hole[i], hole[j]}
}

// raiseOrBet returns whichever aggressive option is legal.
func raiseOrBet(legal []game.LegalOption) (game.LegalOption, bool) {
	if l, ok := game.FindOption(legal, game.Raise); ok {
		return l, true
	}
	return game.FindOption(legal, game.Bet)
}
