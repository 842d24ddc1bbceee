package game

import "fmt"

// Ledger tracks the pot layers of one hand and every chip taken from
// player balances. Open layers can still receive chips; archived layers
// are closed and wait for showdown.
type Ledger struct {
	open     Layers
	archive  Layers
	deducted int
}

// NewLedger opens a main pot contested by the given players.
func NewLedger(players []*Player) *Ledger {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		if !p.SittingOut {
			ids = append(ids, p.ID)
		}
	}
	return &Ledger{open: NewLayers(ids)}
}

// Charge takes up to amount chips from the player and returns the chips
// actually moved into the pot.
func (l *Ledger) Charge(p *Player, amount int) int {
	var paid int
	l.open, paid = Charge(l.open, p.ID, amount, p.Chips)
	p.Chips -= paid
	p.Committed += paid
	p.HandCommitted += paid
	l.deducted += paid
	return paid
}

// ChargeAll charges the same forced amount to every player in turn.
func (l *Ledger) ChargeAll(amount int, players []*Player) int {
	total := 0
	for _, p := range players {
		total += l.Post(p, amount)
	}
	return total
}

// Post collects a forced bet such as an ante or blind. The bet level is
// raised to level if needed and the player pays what they owe towards it.
func (l *Ledger) Post(p *Player, level int) int {
	if current := l.open.Level(); current < level {
		l.open = Demand(l.open, level-current)
	}
	return l.Charge(p, l.open.Owes(p.ID))
}

// Fold removes a player from every layer. Their chips stay in the pot.
func (l *Ledger) Fold(id string) {
	l.open = Drop(l.open, id)
	l.archive = Drop(l.archive, id)
}

// Owes returns the chips a player needs to call.
func (l *Ledger) Owes(id string) int {
	return l.open.Owes(id)
}

// Outstanding reports whether some player still owes chips.
func (l *Ledger) Outstanding() bool {
	return l.open.Outstanding()
}

// EndStreet archives layers that can no longer receive chips.
func (l *Ledger) EndStreet() {
	l.open, l.archive = RemoveOldPots(l.open, l.archive)
}

// Open returns the open layers.
func (l *Ledger) Open() Layers {
	return l.open.clone()
}

// Archived returns the closed layers.
func (l *Ledger) Archived() Layers {
	return l.archive.clone()
}

// Pots returns every layer, archived first, in the order they were formed.
func (l *Ledger) Pots() Layers {
	all := make(Layers, 0, len(l.archive)+len(l.open))
	all = append(all, l.archive.clone()...)
	return append(all, l.open.clone()...)
}

// Total returns the chips held by the ledger.
func (l *Ledger) Total() int {
	return l.open.Total() + l.archive.Total()
}

// Deducted returns the chips taken from players this hand.
func (l *Ledger) Deducted() int {
	return l.deducted
}

// Verify checks that the ledger holds exactly the chips taken from players.
func (l *Ledger) Verify() error {
	if total := l.Total(); total != l.deducted {
		return fmt.Errorf("%w: pots hold %d chips but %d were deducted", ErrChipMismatch, total, l.deducted)
	}
	return nil
}
