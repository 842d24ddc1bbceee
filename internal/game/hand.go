package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/deck"
)

// ActionRecord is one entry in a hand's action log.
type ActionRecord struct {
	PlayerID string
	Street   Street
	Option   Option
	// Total is the player's street contribution after the action.
	Total int
	// Forced marks antes and blinds.
	Forced bool
	// TimedOut marks defaults applied for a late or unusable answer.
	TimedOut bool
}

// HandResult summarises a finished hand.
type HandResult struct {
	HandID         string
	TableID        string
	Variant        Variant
	Started        time.Time
	Seats          []int
	PlayerIDs      []string
	Names          []string
	StartingStacks []int
	FinalStacks    []int
	Antes          []int
	Blinds         []int
	Dealt          map[string][]deck.Card
	Discarded      map[string]deck.Card
	Board          []deck.Card
	Actions        []ActionRecord
	Pots           []PotResult
	Showdown       bool
}

// Winnings returns the chips each player won, in hand seat order.
func (r *HandResult) Winnings() []int {
	out := make([]int, len(r.PlayerIDs))
	for _, pot := range r.Pots {
		for _, w := range pot.Winners {
			if i := slices.Index(r.PlayerIDs, w.PlayerID); i >= 0 {
				out[i] += w.Amount
			}
		}
	}
	return out
}

// HandOption configures a Hand during creation.
type HandOption func(*Hand)

// WithHandLogger sets the logger.
func WithHandLogger(logger *log.Logger) HandOption {
	return func(h *Hand) { h.logger = logger }
}

// WithHandEvents publishes hand events on bus.
func WithHandEvents(bus EventBus) HandOption {
	return func(h *Hand) { h.bus = bus }
}

// WithHandClock sets the clock used for event timestamps.
func WithHandClock(clock quartz.Clock) HandOption {
	return func(h *Hand) { h.clock = clock }
}

// WithDisconnected reports players who left mid-hand. They are folded when
// the action reaches them.
func WithDisconnected(fn func(id string) bool) HandOption {
	return func(h *Hand) { h.disconnected = fn }
}

// WithHandSeats records the table seat of each player.
func WithHandSeats(seats []int) HandOption {
	return func(h *Hand) { h.seats = seats }
}

// Hand sequences a single hand: deal, antes and blinds, four betting
// streets and payout.
type Hand struct {
	ID      string
	TableID string
	Variant Variant

	rules   Rules
	players []*Player
	seats   []int
	dealer  int
	sb, bb  int

	deck   *deck.Deck
	board  []deck.Card
	ledger *Ledger
	street Street
	round  *BettingRound

	decider      Decider
	disconnected func(id string) bool
	bus          EventBus
	clock        quartz.Clock
	logger       *log.Logger

	result *HandResult
}

// NewHand prepares a hand. players are the participants in seat order and
// dealer, sb and bb index into them.
func NewHand(id string, variant Variant, rules Rules, players []*Player, dealer, sb, bb int, d *deck.Deck, decider Decider, opts ...HandOption) *Hand {
	h := &Hand{
		ID:      id,
		Variant: variant,
		rules:   rules,
		players: players,
		dealer:  dealer,
		sb:      sb,
		bb:      bb,
		deck:    d,
		decider: decider,
		ledger:  NewLedger(players),
		clock:   quartz.NewReal(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.seats == nil {
		h.seats = make([]int, len(players))
		for i := range h.seats {
			h.seats[i] = i
		}
	}
	h.logger = h.logger.With("hand", id)
	return h
}

// Ledger returns the hand's pot ledger.
func (h *Hand) Ledger() *Ledger {
	return h.ledger
}

// Board returns the community cards dealt so far.
func (h *Hand) Board() []deck.Card {
	return slices.Clone(h.board)
}

// Run plays the hand to completion. If ctx is cancelled mid-hand the chips
// committed so far are returned to their owners.
func (h *Hand) Run(ctx context.Context) (*HandResult, error) {
	h.start()
	h.publish(Event{Type: EventHandStart})
	h.deal()

	if err := h.postForced(); err != nil {
		return nil, err
	}

	for street := Preflop; street <= River; street++ {
		if street > Preflop {
			if h.contenders() < 2 {
				break
			}
			h.reveal(street)
		}
		if err := h.bet(ctx, street); err != nil {
			if ctx.Err() != nil {
				h.refund()
			}
			return nil, err
		}
		h.ledger.EndStreet()
		if street == Preflop && h.Variant.Discards() > 0 && h.contenders() >= 2 {
			h.discard(ctx)
		}
	}

	if err := h.payout(); err != nil {
		return nil, err
	}
	h.result.Board = h.Board()
	for _, p := range h.players {
		h.result.FinalStacks = append(h.result.FinalStacks, p.Chips)
	}
	h.publish(Event{Type: EventHandEnd, Result: h.result})
	return h.result, nil
}

func (h *Hand) start() {
	h.result = &HandResult{
		HandID:    h.ID,
		TableID:   h.TableID,
		Variant:   h.Variant,
		Started:   h.clock.Now(),
		Seats:     slices.Clone(h.seats),
		Dealt:     make(map[string][]deck.Card),
		Discarded: make(map[string]deck.Card),
		Antes:     make([]int, len(h.players)),
		Blinds:    make([]int, len(h.players)),
	}
	for _, p := range h.players {
		p.resetForHand()
		h.result.PlayerIDs = append(h.result.PlayerIDs, p.ID)
		h.result.Names = append(h.result.Names, p.Name)
		h.result.StartingStacks = append(h.result.StartingStacks, p.Chips)
	}
	h.street = Preflop
}

func (h *Hand) deal() {
	n := h.Variant.HoleCards()
	for i := 0; i < n; i++ {
		for j := range h.players {
			p := h.players[(h.sb+j)%len(h.players)]
			p.HoleCards = append(p.HoleCards, h.deck.Draw())
		}
	}
	for _, p := range h.players {
		h.result.Dealt[p.ID] = slices.Clone(p.HoleCards)
	}
}

func (h *Hand) postForced() error {
	if h.rules.Ante > 0 {
		for i, p := range h.players {
			paid := h.ledger.Post(p, h.rules.Ante)
			h.result.Antes[i] = paid
			h.record(ActionRecord{PlayerID: p.ID, Street: Preflop, Option: Option{Type: Call, Amount: paid}, Forced: true})
		}
		if err := h.verify(); err != nil {
			return err
		}
		h.ledger.EndStreet()
		for _, p := range h.players {
			p.resetForStreet()
		}
	}

	for _, blind := range []struct {
		idx    int
		amount int
	}{{h.sb, h.rules.SmallBlind}, {h.bb, h.rules.BigBlind}} {
		p := h.players[blind.idx]
		paid := h.ledger.Post(p, blind.amount)
		h.result.Blinds[blind.idx] = paid
		h.record(ActionRecord{PlayerID: p.ID, Street: Preflop, Option: Option{Type: Bet, Amount: paid}, Total: p.Committed, Forced: true})
		if err := h.verify(); err != nil {
			return err
		}
		h.publish(Event{Type: EventBlindPosted, PlayerID: p.ID, Option: &Option{Type: Bet, Amount: paid}})
	}
	return nil
}

func (h *Hand) reveal(street Street) {
	h.street = street
	h.deck.Burn()
	n := 1
	if street == Flop {
		n = 3
	}
	h.board = append(h.board, h.deck.DrawN(n)...)
	for _, p := range h.players {
		p.resetForStreet()
	}
	h.publish(Event{Type: EventStreetChange})
}

func (h *Hand) bet(ctx context.Context, street Street) error {
	start := h.dealer + 1
	if street == Preflop {
		start = h.bb + 1
	}
	h.round = NewBettingRound(street, h.players, h.ledger, start, h.rules.BigBlind, h.rules.MinChip)

	for h.round.State() == WaitingForAction {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.turn(ctx); err != nil {
			return err
		}
	}
	h.round = nil
	return nil
}

func (h *Hand) turn(ctx context.Context) error {
	p := h.round.Actor()
	legal := h.round.LegalOptions()
	record := ActionRecord{PlayerID: p.ID, Street: h.street}

	if h.disconnected != nil && h.disconnected(p.ID) {
		h.logger.Info("Folding disconnected player", "player", p.ID)
		record.Option = h.round.ForceFold()
		return h.applied(p, record)
	}

	req := DecisionRequest{
		PlayerID: p.ID,
		Legal:    legal,
		Timeout:  h.rules.DecisionTimeout,
		Snapshot: h.Snapshot().ForPlayer(p.ID),
	}
	opt, err := h.decider.DesiredOption(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, ErrDecisionTimeout):
		h.logger.Info("Decision timed out, applying default", "player", p.ID)
		opt, record.TimedOut = DefaultOption(legal), true
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		h.logger.Warn("Protocol violation, applying default", "player", p.ID, "error", err)
		opt, record.TimedOut = DefaultOption(legal), true
	}

	applied, err := h.round.Apply(opt)
	if errors.Is(err, ErrIllegalOption) {
		h.logger.Warn("Protocol violation, applying default", "player", p.ID, "option", opt, "error", err)
		applied, err = h.round.Apply(DefaultOption(legal))
		record.TimedOut = true
	}
	if err != nil {
		return err
	}
	record.Option = applied
	return h.applied(p, record)
}

func (h *Hand) applied(p *Player, record ActionRecord) error {
	record.Total = p.Committed
	h.record(record)
	if err := h.verify(); err != nil {
		return err
	}
	opt := record.Option
	h.publish(Event{Type: EventOptionApplied, PlayerID: p.ID, Option: &opt})
	return nil
}

func (h *Hand) discard(ctx context.Context) {
	discarder, ok := h.decider.(Discarder)
	for _, p := range h.players {
		if !p.InHand() || len(p.HoleCards) <= 2 {
			continue
		}
		idx := LowestCard(p.HoleCards)
		if ok {
			if i := discarder.Discard(ctx, p.ID, slices.Clone(p.HoleCards)); i >= 0 && i < len(p.HoleCards) {
				idx = i
			}
		}
		h.result.Discarded[p.ID] = p.HoleCards[idx]
		p.HoleCards = slices.Delete(slices.Clone(p.HoleCards), idx, idx+1)
	}
}

// refund returns every committed chip when a hand is abandoned.
func (h *Hand) refund() {
	for _, p := range h.players {
		p.Chips += p.HandCommitted
		p.HandCommitted = 0
		p.Committed = 0
	}
	h.logger.Warn("Hand abandoned, chips returned", "pot", h.ledger.Total())
}

func (h *Hand) verify() error {
	err := h.ledger.Verify()
	if err == nil {
		return nil
	}
	h.logger.Error("Chip accounting failed", "error", err)
	if h.rules.Strict {
		panic(err)
	}
	return fmt.Errorf("hand %s: %w", h.ID, err)
}

func (h *Hand) record(r ActionRecord) {
	h.result.Actions = append(h.result.Actions, r)
}

func (h *Hand) contenders() int {
	n := 0
	for _, p := range h.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (h *Hand) publish(e Event) {
	if h.bus == nil {
		return
	}
	e.Time = h.clock.Now()
	e.Snapshot = h.Snapshot()
	h.bus.Publish(e)
}

// Snapshot returns the current state of the hand, including every
// player's hole cards. Use ForPlayer or Public before exposing it.
func (h *Hand) Snapshot() Snapshot {
	s := Snapshot{
		TableID:  h.TableID,
		HandID:   h.ID,
		Variant:  h.Variant,
		Street:   h.street,
		Board:    h.Board(),
		Dealer:   h.players[h.dealer].ID,
		BigBlind: h.rules.BigBlind,
	}
	for i, p := range h.players {
		s.Players = append(s.Players, PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       h.seats[i],
			Chips:      p.Chips,
			Committed:  p.Committed,
			Folded:     p.Folded,
			SittingOut: p.SittingOut,
			AllIn:      p.IsAllIn(),
			HoleCards:  slices.Clone(p.HoleCards),
		})
	}
	for _, l := range h.ledger.Archived() {
		s.Pots = append(s.Pots, PotView{Amount: l.Amount, Eligible: l.Eligible, Archived: true})
	}
	for _, l := range h.ledger.Open() {
		s.Pots = append(s.Pots, PotView{Amount: l.Amount, Owed: l.Owed, Eligible: l.Eligible})
	}
	if h.round != nil {
		if actor := h.round.Actor(); actor != nil {
			s.Actor = actor.ID
			s.Legal = h.round.LegalOptions()
			s.TimeLeft = h.rules.DecisionTimeout
		}
	}
	return s
}
