// Package statistics tracks per-player win rates across hands.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Sample is one player's outcome in one hand.
type Sample struct {
	NetBB    float64 // big blinds won or lost
	Showdown bool    // player reached showdown
	// Position is the distance clockwise from the button: 0 on the button,
	// 1 in the small blind and so on.
	Position int
	PotBB    float64 // total pot in big blinds
}

// PositionStats tracks results from one position.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Mean returns the big blinds per hand from this position.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// Statistics accumulates samples for one player.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64 // sum of squares for the variance
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions map[int]PositionStats

	MaxPotBB  float64
	BigPots   int // pots of at least BigPotBB
	BigPotsBB float64
}

// BigPotBB is the pot size counted as a big pot.
const BigPotBB = 50

// Add incorporates a sample.
func (s *Statistics) Add(r Sample) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.Showdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Positions == nil {
		s.Positions = make(map[int]PositionStats)
	}
	ps := s.Positions[r.Position]
	ps.Hands++
	ps.SumBB += r.NetBB
	s.Positions[r.Position] = ps

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Mean returns big blinds won per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated result at p, from 0 to 1.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(s.Values))

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulated totals agree with each other.
func (s *Statistics) Validate() error {
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total %.6f, showdown %.6f, non-showdown %.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length %d does not match hands %d", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("wins %d exceed hands %d", wins, s.Hands)
	}
	total := 0
	for _, ps := range s.Positions {
		total += ps.Hands
	}
	if total != s.Hands {
		return fmt.Errorf("position hands %d do not match hands %d", total, s.Hands)
	}
	return nil
}
