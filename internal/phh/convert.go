package phh

import (
	"fmt"
	"slices"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/game"
)

// FromResult converts a finished hand. Player n in the history is the
// hand's nth participant.
func FromResult(r *game.HandResult, bigBlind int) *HandHistory {
	n := len(r.PlayerIDs)
	h := &HandHistory{
		Variant:           VariantCode(r.Variant),
		Table:             r.TableID,
		SeatCount:         n,
		Antes:             slices.Clone(r.Antes),
		BlindsOrStraddles: slices.Clone(r.Blinds),
		MinBet:            bigBlind,
		StartingStacks:    slices.Clone(r.StartingStacks),
		FinishingStacks:   slices.Clone(r.FinalStacks),
		Winnings:          r.Winnings(),
		Players:           slices.Clone(r.PlayerIDs),
		HandID:            r.HandID,
		Timestamp:         r.Started,
	}
	for _, s := range r.Seats {
		h.Seats = append(h.Seats, s+1)
	}
	if !r.Started.IsZero() {
		ts := r.Started.UTC()
		h.Time = ts.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day, h.Month, h.Year = ts.Day(), int(ts.Month()), ts.Year()
	}
	h.Actions = actions(r)
	return h
}

func actions(r *game.HandResult) []string {
	player := make(map[string]string, len(r.PlayerIDs))
	for i, id := range r.PlayerIDs {
		player[id] = fmt.Sprintf("p%d", i+1)
	}

	var out []string
	for _, id := range r.PlayerIDs {
		out = append(out, fmt.Sprintf("d dh %s %s", player[id], deck.FormatCards(r.Dealt[id])))
	}

	street := game.Preflop
	dealt := 0
	advance := func(to game.Street) {
		for street < to {
			if street == game.Preflop {
				for _, id := range r.PlayerIDs {
					if c, ok := r.Discarded[id]; ok {
						out = append(out, fmt.Sprintf("%s sd %s", player[id], c.Code()))
					}
				}
			}
			street++
			n := 1
			if street == game.Flop {
				n = 3
			}
			if dealt+n > len(r.Board) {
				continue
			}
			out = append(out, "d db "+deck.FormatCards(r.Board[dealt:dealt+n]))
			dealt += n
		}
	}

	folded := make(map[string]bool)
	high := 0
	for _, a := range r.Actions {
		if a.Forced {
			if a.Option.Type == game.Bet {
				high = max(high, a.Total)
			}
			continue
		}
		if a.Street != street {
			advance(a.Street)
			high = 0
		}
		p := player[a.PlayerID]
		switch {
		case a.Option.Type == game.Fold:
			folded[a.PlayerID] = true
			out = append(out, p+" f")
		case a.Total > high:
			high = a.Total
			out = append(out, fmt.Sprintf("%s cbr %d", p, a.Total))
		default:
			out = append(out, p+" cc")
		}
	}
	advance(game.River)

	if r.Showdown {
		for _, id := range r.PlayerIDs {
			if folded[id] {
				continue
			}
			hole := slices.DeleteFunc(slices.Clone(r.Dealt[id]), func(c deck.Card) bool {
				d, ok := r.Discarded[id]
				return ok && c == d
			})
			out = append(out, fmt.Sprintf("%s sm %s", player[id], deck.FormatCards(hole)))
		}
	}
	return out
}
