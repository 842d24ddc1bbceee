package game

import "fmt"

// RoundState is the state of a betting round.
type RoundState int

const (
	WaitingForAction RoundState = iota
	RoundClosed
)

func (s RoundState) String() string {
	if s == RoundClosed {
		return "closed"
	}
	return "waiting"
}

// BettingRound runs one street of betting over the hand's players, who are
// held in seat order. Chips move through the ledger.
type BettingRound struct {
	street   Street
	players  []*Player
	ledger   *Ledger
	bigBlind int
	minChip  int
	minRaise int
	actor    int
	state    RoundState
}

// NewBettingRound starts a round. The first actor is the first player at
// or after index start who still needs to act.
func NewBettingRound(street Street, players []*Player, ledger *Ledger, start, bigBlind, minChip int) *BettingRound {
	br := &BettingRound{
		street:   street,
		players:  players,
		ledger:   ledger,
		bigBlind: bigBlind,
		minChip:  max(minChip, 1),
		minRaise: bigBlind,
		actor:    -1,
	}
	br.advance(start)
	return br
}

// Street returns the street being bet.
func (br *BettingRound) Street() Street {
	return br.street
}

// State returns whether the round is waiting for an action or closed.
func (br *BettingRound) State() RoundState {
	return br.state
}

// Actor returns the player to act, or nil once the round is closed.
func (br *BettingRound) Actor() *Player {
	if br.state == RoundClosed {
		return nil
	}
	return br.players[br.actor]
}

// ActorIndex returns the index of the acting player, or -1.
func (br *BettingRound) ActorIndex() int {
	if br.state == RoundClosed {
		return -1
	}
	return br.actor
}

// MinRaise returns the smallest raise increment currently allowed.
func (br *BettingRound) MinRaise() int {
	return br.minRaise
}

// LegalOptions returns the options available to the acting player.
func (br *BettingRound) LegalOptions() []LegalOption {
	p := br.Actor()
	if p == nil {
		return nil
	}

	owes := br.ledger.Owes(p.ID)
	balance := p.Chips
	var opts []LegalOption

	if owes > 0 {
		opts = append(opts, LegalOption{Type: Fold})
	} else {
		opts = append(opts, LegalOption{Type: Check, Total: p.Committed})
	}

	if owes > 0 {
		call := min(owes, balance)
		opts = append(opts, LegalOption{Type: Call, Min: call, Max: call, Total: p.Committed + call})
	}

	if owes == 0 && balance >= br.bigBlind {
		opts = append(opts, LegalOption{Type: Bet, Min: br.bigBlind, Max: balance, Total: p.Committed + br.bigBlind})
	}

	if owes > 0 && owes+br.minRaise <= balance && br.opponentCanRespond(p) {
		raise := owes + br.minRaise
		opts = append(opts, LegalOption{Type: Raise, Min: raise, Max: balance, Total: p.Committed + raise})
	}

	if balance > 0 {
		opts = append(opts, LegalOption{Type: AllIn, Min: balance, Max: balance, Total: p.Committed + balance})
	}
	return opts
}

// Apply validates an option against the legal set, clamps its amount and
// applies it for the acting player. The applied option is returned.
func (br *BettingRound) Apply(opt Option) (Option, error) {
	p := br.Actor()
	if p == nil {
		return Option{}, fmt.Errorf("%w: betting round is closed", ErrIllegalOption)
	}

	legal, ok := FindOption(br.LegalOptions(), opt.Type)
	if !ok {
		return Option{}, fmt.Errorf("%w: %s not available to %s", ErrIllegalOption, opt.Type, p.ID)
	}

	applied := Option{Type: opt.Type, Amount: legal.Clamp(opt.Amount, br.minChip)}
	switch opt.Type {
	case Fold:
		br.fold(p)
	case Check:
	default:
		owes := br.ledger.Owes(p.ID)
		paid := br.ledger.Charge(p, applied.Amount)
		applied.Amount = paid
		if raiseBy := paid - owes; raiseBy >= br.minRaise {
			br.minRaise = raiseBy
		}
	}

	p.Acted = true
	br.advance(br.actor + 1)
	return applied, nil
}

// ForceFold folds the acting player regardless of the legal set, as when
// they have left the table.
func (br *BettingRound) ForceFold() Option {
	p := br.Actor()
	if p == nil {
		return Option{}
	}
	br.fold(p)
	p.Acted = true
	br.advance(br.actor + 1)
	return Option{Type: Fold}
}

func (br *BettingRound) fold(p *Player) {
	p.Folded = true
	br.ledger.Fold(p.ID)
}

// advance moves the action to the first player from index from onwards who
// still needs to act, or closes the round.
func (br *BettingRound) advance(from int) {
	n := len(br.players)
	if n == 0 || br.contenders() < 2 {
		br.close()
		return
	}
	for i := 0; i < n; i++ {
		idx := ((from+i)%n + n) % n
		if br.needsAction(br.players[idx]) {
			br.actor = idx
			br.state = WaitingForAction
			return
		}
	}
	br.close()
}

func (br *BettingRound) close() {
	br.actor = -1
	br.state = RoundClosed
}

// needsAction reports whether a player must still act this street: they
// owe chips, or they have not acted yet and someone else could still bet
// against them.
func (br *BettingRound) needsAction(p *Player) bool {
	if !p.CanAct() {
		return false
	}
	if br.ledger.Owes(p.ID) > 0 {
		return true
	}
	return !p.Acted && br.funded() >= 2
}

func (br *BettingRound) contenders() int {
	n := 0
	for _, p := range br.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (br *BettingRound) funded() int {
	n := 0
	for _, p := range br.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

func (br *BettingRound) opponentCanRespond(p *Player) bool {
	for _, o := range br.players {
		if o != p && o.CanAct() {
			return true
		}
	}
	return false
}
