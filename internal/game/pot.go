package game

import "slices"

// Layer is one pot. Index 0 of a Layers list is the main pot, later layers
// are side pots formed when an all-in caps a player's contribution.
//
// Owed is the per-player amount of the open betting increment; a player has
// matched the layer once they have paid Owed into it. When every eligible
// player has matched, the increment settles and Owed drops back to zero.
type Layer struct {
	Amount   int
	Owed     int
	Eligible []string

	paid  map[string]int
	allIn map[string]bool
}

func newLayer(eligible []string) Layer {
	return Layer{
		Eligible: slices.Clone(eligible),
		paid:     make(map[string]int),
		allIn:    make(map[string]bool),
	}
}

// Paid returns the chips a player has put towards the open increment.
func (l Layer) Paid(id string) int {
	return l.paid[id]
}

// Matched returns how many eligible players have matched the owed amount
// of the open increment. It is zero when no increment is open.
func (l Layer) Matched() int {
	if l.Owed == 0 {
		return 0
	}
	n := 0
	for _, id := range l.Eligible {
		if l.paid[id] >= l.Owed {
			n++
		}
	}
	return n
}

// IsEligible reports whether a player can win this layer.
func (l Layer) IsEligible(id string) bool {
	return slices.Contains(l.Eligible, id)
}

func (l Layer) clone() Layer {
	c := l
	c.Eligible = slices.Clone(l.Eligible)
	c.paid = make(map[string]int, len(l.paid))
	for k, v := range l.paid {
		c.paid[k] = v
	}
	c.allIn = make(map[string]bool, len(l.allIn))
	for k, v := range l.allIn {
		c.allIn[k] = v
	}
	return c
}

func (l *Layer) settle() {
	if l.Owed == 0 || l.Matched() < len(l.Eligible) {
		return
	}
	l.Owed = 0
	clear(l.paid)
}

// Layers is an ordered list of open pot layers. Every function that
// transforms Layers returns a new list and leaves its input untouched.
type Layers []Layer

// NewLayers returns a single empty main pot contested by the given players.
func NewLayers(eligible []string) Layers {
	return Layers{newLayer(eligible)}
}

func (ls Layers) clone() Layers {
	out := make(Layers, len(ls))
	for i, l := range ls {
		out[i] = l.clone()
	}
	return out
}

// Total returns the chips held across all layers.
func (ls Layers) Total() int {
	total := 0
	for _, l := range ls {
		total += l.Amount
	}
	return total
}

// Owes returns the chips a player must add to match every layer.
func (ls Layers) Owes(id string) int {
	owed := 0
	for _, l := range ls {
		if l.IsEligible(id) && !l.allIn[id] {
			owed += max(0, l.Owed-l.paid[id])
		}
	}
	return owed
}

// Level is the total owed increment faced by a player eligible for every layer.
func (ls Layers) Level() int {
	level := 0
	for _, l := range ls {
		level += l.Owed
	}
	return level
}

// Outstanding reports whether any layer still has an unmatched increment.
func (ls Layers) Outstanding() bool {
	for _, l := range ls {
		if l.Owed > 0 && l.Matched() < len(l.Eligible) {
			return true
		}
	}
	return false
}

// Demand raises the owed amount of the newest layer, as when antes or
// blinds are due before anyone has paid.
func Demand(ls Layers, amount int) Layers {
	out := ls.clone()
	if amount <= 0 || len(out) == 0 {
		return out
	}
	out[len(out)-1].Owed += amount
	return capAllIns(out)
}

// Charge takes up to amount chips from a player whose balance is balance
// and returns the new layers with the chips actually deducted.
//
// Chips first pay off what the player owes, oldest layer first. Anything
// left raises the newest layer. A player who runs out of chips before
// matching a layer caps it: the layer is split at the player's level and
// the chips others paid above that level move to a new side pot the capped
// player cannot win.
func Charge(ls Layers, id string, amount, balance int) (Layers, int) {
	out := ls.clone()
	pay := min(amount, balance)
	if pay <= 0 || len(out) == 0 {
		return out, 0
	}

	remaining := pay
	short := -1
	for i := range out {
		l := &out[i]
		if !l.IsEligible(id) {
			continue
		}
		need := l.Owed - l.paid[id]
		if need <= 0 {
			continue
		}
		if remaining < need {
			l.paid[id] += remaining
			l.Amount += remaining
			remaining = 0
			short = i
			break
		}
		l.paid[id] += need
		l.Amount += need
		remaining -= need
	}

	if remaining > 0 {
		last := &out[len(out)-1]
		last.paid[id] += remaining
		last.Amount += remaining
		last.Owed = last.paid[id]
	}

	if pay == balance {
		if short < 0 {
			short = lastEligible(out, id)
		}
		if short >= 0 {
			out[short].allIn[id] = true
			out = split(out, short)
		}
	}

	out = capAllIns(out)
	return settle(out), pay
}

// Drop removes a folded player from every layer. Their chips stay in the
// pot. A layer nobody can win any more merges into its neighbour.
func Drop(ls Layers, id string) Layers {
	out := ls.clone()
	for i := range out {
		l := &out[i]
		if idx := slices.Index(l.Eligible, id); idx >= 0 {
			l.Eligible = slices.Delete(l.Eligible, idx, idx+1)
		}
		delete(l.allIn, id)
	}
	return settle(out)
}

// RemoveOldPots moves every layer but the newest to the archive once none
// of them has an open increment. Those layers are capped and can never
// receive more chips.
func RemoveOldPots(open, archive Layers) (Layers, Layers) {
	if len(open) < 2 {
		return open, archive
	}
	for _, l := range open[:len(open)-1] {
		if l.Owed != 0 {
			return open, archive
		}
	}
	n := len(open) - 1
	archive = append(slices.Clone(archive), open[:n].clone()...)
	return open[n:].clone(), archive
}

// split caps layer i at the level of its all-in players who have not
// matched it. Others' chips above that level move into a new layer placed
// right after it, and capped players are removed from every later layer.
func split(ls Layers, i int) Layers {
	l := &ls[i]

	level := -1
	for id := range l.allIn {
		if p := l.paid[id]; p < l.Owed && (level < 0 || p < level) {
			level = p
		}
	}
	if level < 0 {
		return ls
	}

	capped := make(map[string]bool)
	for id := range l.allIn {
		if l.paid[id] <= level {
			capped[id] = true
		}
	}

	next := newLayer(nil)
	next.Owed = l.Owed - level
	for _, id := range l.Eligible {
		if !capped[id] {
			next.Eligible = append(next.Eligible, id)
		}
	}
	for id, p := range l.paid {
		if p > level {
			next.paid[id] = p - level
			next.Amount += p - level
			l.paid[id] = level
			l.Amount -= p - level
		}
	}
	for id := range l.allIn {
		if !capped[id] {
			next.allIn[id] = true
			delete(l.allIn, id)
		}
	}
	l.Owed = level

	out := slices.Insert(ls, i+1, next)
	for j := i + 2; j < len(out); j++ {
		out[j].Eligible = slices.DeleteFunc(out[j].Eligible, func(id string) bool { return capped[id] })
	}

	// The new layer may itself hold an all-in below its owed amount.
	return split(out, i+1)
}

// capAllIns splits any layer whose owed amount was raised above an all-in
// player's contribution.
func capAllIns(ls Layers) Layers {
	for i := 0; i < len(ls); i++ {
		ls = split(ls, i)
	}
	return ls
}

// settle resets fully matched increments and folds layers without
// eligible players into their neighbour.
func settle(ls Layers) Layers {
	for i := 0; i < len(ls); i++ {
		if len(ls[i].Eligible) > 0 || len(ls) == 1 {
			continue
		}
		target := i - 1
		if target < 0 {
			target = 1
		}
		ls[target].Amount += ls[i].Amount
		ls = slices.Delete(ls, i, i+1)
		i--
	}
	for i := range ls {
		ls[i].settle()
	}
	return ls
}

func lastEligible(ls Layers, id string) int {
	for i := len(ls) - 1; i >= 0; i-- {
		if ls[i].IsEligible(id) {
			return i
		}
	}
	return -1
}
