package game

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomHand deals one hand of variant with random stacks, player count and
// ante, played by a random decider.
func randomHand(t *testing.T, variant Variant, seed int64, bus EventBus) (*Hand, []*Player, *HandResult) {
	t.Helper()
	rng := randutil.New(seed)

	n := 2 + rng.IntN(min(6, variant.MaxPlayers())-1)
	stacks := make([]int, n)
	for i := range stacks {
		stacks[i] = 5 + rng.IntN(300)
	}
	ps := players(stacks...)

	rules := testRules()
	rules.Ante = rng.IntN(3) * 5
	sb, bb := 1, 2
	if n == 2 {
		sb, bb = 0, 1
	}

	var opts []HandOption
	if bus != nil {
		opts = append(opts, WithHandEvents(bus))
	}
	decider := &randomDecider{rng: randutil.New(seed + 7919)}
	hand := NewHand(fmt.Sprintf("h%d", seed), variant, rules, ps, 0, sb, bb, deck.New(rng, variant.DeckKind()), decider, opts...)
	result, err := hand.Run(context.Background())
	require.NoError(t, err, "seed %d", seed)
	return hand, ps, result
}

func isSubset(sub, set []string) bool {
	for _, id := range sub {
		if !slices.Contains(set, id) {
			return false
		}
	}
	return true
}

func TestHandLedgerInvariants(t *testing.T) {
	for _, variant := range Variants {
		t.Run(string(variant), func(t *testing.T) {
			for seed := int64(1); seed <= 150; seed++ {
				events := &recorder{}
				bus := NewEventBus()
				bus.Subscribe(events)
				randomHand(t, variant, seed, bus)

				var prev []PotView
				for _, e := range events.events {
					pots := e.Snapshot.Pots

					if e.Type == EventStreetChange || e.Type == EventHandEnd {
						owing := 0
						for _, p := range pots {
							if p.Owed > 0 {
								owing++
							}
						}
						assert.LessOrEqual(t, owing, 1, "seed %d %s: layers with an open increment", seed, e.Type)
					}

					for k := 1; k < len(pots); k++ {
						assert.True(t, isSubset(pots[k].Eligible, pots[k-1].Eligible),
							"seed %d %s: pot %d eligible %v not within pot %d %v", seed, e.Type, k, pots[k].Eligible, k-1, pots[k-1].Eligible)
					}

					if len(prev) > 0 && len(pots) > 0 {
						assert.True(t, isSubset(pots[0].Eligible, prev[0].Eligible),
							"seed %d %s: main pot gained players", seed, e.Type)
						for k, old := range prev {
							if !old.Archived {
								break
							}
							require.Greater(t, len(pots), k, "seed %d: archived pot %d vanished", seed, k)
							assert.True(t, pots[k].Archived, "seed %d: pot %d reopened", seed, k)
							assert.Equal(t, old.Amount, pots[k].Amount, "seed %d: archived pot %d changed", seed, k)
							assert.True(t, isSubset(pots[k].Eligible, old.Eligible),
								"seed %d %s: archived pot %d gained players", seed, e.Type, k)
						}
					}
					prev = pots
				}
			}
		})
	}
}

// expectedWinnings awards a hand from each player's total commitment:
// every distinct commitment of a player still in the hand caps a pot level
// contested by the players who reached it. Chips above the top level, put
// in by players who later folded, join the top pot.
func expectedWinnings(t *testing.T, h *Hand, ps []*Player, board []deck.Card) []int {
	t.Helper()
	n := len(ps)
	var levels []int
	for _, p := range ps {
		if !p.Folded && !slices.Contains(levels, p.HandCommitted) {
			levels = append(levels, p.HandCommitted)
		}
	}
	slices.Sort(levels)

	rule, ranking := h.Variant.Rule(), h.Variant.Ranking()
	hands := make(map[string]evaluator.Result)
	won := make([]int, n)
	prevLevel := 0
	for li, level := range levels {
		amount := 0
		for _, p := range ps {
			amount += min(p.HandCommitted, level) - min(p.HandCommitted, prevLevel)
			if li == len(levels)-1 {
				amount += max(0, p.HandCommitted-level)
			}
		}
		prevLevel = level
		if amount == 0 {
			continue
		}

		var contenders []int
		for k := 1; k <= n; k++ {
			i := (h.dealer + k) % n
			if !ps[i].Folded && ps[i].HandCommitted >= level {
				contenders = append(contenders, i)
			}
		}
		winners := contenders
		if len(contenders) > 1 {
			winners = nil
			var best evaluator.Result
			for _, i := range contenders {
				hand, ok := hands[ps[i].ID]
				if !ok {
					var err error
					hand, err = evaluator.Analyze(append(slices.Clone(ps[i].HoleCards), board...), rule, ranking)
					require.NoError(t, err)
					hands[ps[i].ID] = hand
				}
				if winners == nil {
					winners, best = []int{i}, hand
					continue
				}
				switch c := ranking.Compare(hand, best); {
				case c > 0:
					winners, best = []int{i}, hand
				case c == 0:
					winners = append(winners, i)
				}
			}
		}
		for j, share := range splitPot(amount, len(winners)) {
			won[winners[j]] += share
		}
	}
	return won
}

func TestHandPayoutMatchesSidePotLevels(t *testing.T) {
	for _, variant := range Variants {
		t.Run(string(variant), func(t *testing.T) {
			for seed := int64(1); seed <= 200; seed++ {
				hand, ps, result := randomHand(t, variant, seed, nil)

				want := expectedWinnings(t, hand, ps, result.Board)
				assert.Equal(t, want, result.Winnings(), "seed %d", seed)

				for i, p := range ps {
					assert.Equal(t, result.StartingStacks[i]-p.HandCommitted+want[i], p.Chips, "seed %d player %s", seed, p.ID)
				}
			}
		})
	}
}
