package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/gameid"
)

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the table logger.
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithClock sets the clock used for timestamps.
func WithClock(clock quartz.Clock) TableOption {
	return func(t *Table) { t.clock = clock }
}

// WithRand sets the source used to shuffle decks and generate hand IDs.
func WithRand(rng *rand.Rand) TableOption {
	return func(t *Table) { t.rng = rng }
}

// WithEventBus publishes every hand event on bus.
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.bus = bus }
}

// WithHandLimit stops the table after n hands. Zero plays until one player
// is left.
func WithHandLimit(n int) TableOption {
	return func(t *Table) { t.handLimit = n }
}

// WithDeckFactory overrides how decks are built, for stacked decks in tests.
func WithDeckFactory(fn func(kind deck.Kind) *deck.Deck) TableOption {
	return func(t *Table) { t.newDeck = fn }
}

// Table seats players and plays hands until fewer than two can play.
// Seating changes requested with Join and Leave take effect between hands.
type Table struct {
	id        string
	rules     Rules
	seats     []*Player
	dealer    int
	decider   Decider
	bus       EventBus
	logger    *log.Logger
	clock     quartz.Clock
	rng       *rand.Rand
	ids       *gameid.Generator
	newDeck   func(kind deck.Kind) *deck.Deck
	handLimit int
	hands     int
	standings *Standings

	mu      sync.Mutex
	joins   []*Player
	leaving map[string]bool
}

// NewTable creates a table with empty seats.
func NewTable(id string, rules Rules, decider Decider, opts ...TableOption) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		id:        id,
		rules:     rules,
		seats:     make([]*Player, rules.MaxSeats),
		decider:   decider,
		logger:    log.New(io.Discard),
		clock:     quartz.NewReal(),
		standings: NewStandings(rules.Prizes),
		leaving:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if t.newDeck == nil {
		t.newDeck = func(kind deck.Kind) *deck.Deck { return deck.New(t.rng, kind) }
	}
	t.ids = gameid.NewGenerator(t.rng).WithClock(t.clock)
	t.logger = t.logger.With("table", id)
	return t, nil
}

// ID returns the table ID.
func (t *Table) ID() string {
	return t.id
}

// Rules returns the table rules.
func (t *Table) Rules() Rules {
	return t.rules
}

// Join queues a player to be seated before the next hand.
func (t *Table) Join(p *Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	occupied := len(t.joins)
	for _, s := range t.seats {
		if s == nil {
			continue
		}
		if s.ID == p.ID && !t.leaving[p.ID] {
			return fmt.Errorf("%w: %s", ErrAlreadySeated, p.ID)
		}
		if !t.leaving[s.ID] {
			occupied++
		}
	}
	for _, q := range t.joins {
		if q.ID == p.ID {
			return fmt.Errorf("%w: %s", ErrAlreadySeated, p.ID)
		}
	}
	if occupied >= t.rules.MaxSeats {
		return ErrTableFull
	}
	t.joins = append(t.joins, p)
	return nil
}

// Leave marks a player to be removed at the end of the current hand. If it
// is their turn before then, they fold.
func (t *Table) Leave(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.joins = slices.DeleteFunc(t.joins, func(p *Player) bool { return p.ID == id })
	t.leaving[id] = true
}

func (t *Table) hasLeft(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.leaving[id]
}

// Players returns the seated players in seat order.
func (t *Table) Players() []*Player {
	var out []*Player
	for _, p := range t.seats {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Seat returns the player in a seat, or nil.
func (t *Table) Seat(i int) *Player {
	if i < 0 || i >= len(t.seats) {
		return nil
	}
	return t.seats[i]
}

// Dealer returns the seat holding the button.
func (t *Table) Dealer() int {
	return t.dealer
}

// HandsPlayed returns the number of completed hands.
func (t *Table) HandsPlayed() int {
	return t.hands
}

// Standings returns finishing places for the players so far.
func (t *Table) Standings() []Place {
	var alive []*Player
	for _, p := range t.Players() {
		if !p.SittingOut {
			alive = append(alive, p)
		}
	}
	return t.standings.Places(alive)
}

// Run plays hands until fewer than two players can play, the hand limit is
// reached or ctx is cancelled.
func (t *Table) Run(ctx context.Context) error {
	t.logger.Info("Table started", "game", t.rules.Game, "seats", t.rules.MaxSeats)
	defer t.publishClosed()

	for {
		if ctx.Err() != nil {
			t.logger.Info("Table stopped", "hands", t.hands)
			return nil
		}
		if t.handLimit > 0 && t.hands >= t.handLimit {
			t.logger.Info("Hand limit reached", "hands", t.hands)
			return nil
		}

		_, err := t.PlayHand(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotEnoughPlayers):
			t.logger.Info("Not enough players, table finished", "hands", t.hands)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			t.logger.Info("Table stopped mid-hand", "hands", t.hands)
			return nil
		default:
			return fmt.Errorf("table %s: %w", t.id, err)
		}
	}
}

// PlayHand plays a single hand.
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	t.applySeating()

	var participants []*Player
	var seats []int
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		if p.Chips <= 0 {
			p.SittingOut = true
		}
		if !p.SittingOut {
			participants = append(participants, p)
			seats = append(seats, i)
		}
	}
	if len(participants) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	if !t.canPlay(t.dealer) {
		t.dealer = t.nextSeat(t.dealer)
	}
	sbSeat := t.nextSeat(t.dealer)
	bbSeat := t.nextSeat(sbSeat)

	variant := t.rules.Game
	if variant == Mixed {
		variant = t.decider.DesiredGameType(ctx, t.seats[t.dealer].ID)
		if !variant.Playable() {
			t.logger.Warn("Dealer chose an unknown game, dealing hold'em", "choice", variant)
			variant = Holdem
		}
	}

	handID := t.ids.Generate()
	hand := NewHand(handID, variant, t.rules, participants,
		slices.Index(seats, t.dealer), slices.Index(seats, sbSeat), slices.Index(seats, bbSeat),
		t.newDeck(variant.DeckKind()), t.decider,
		WithHandLogger(t.logger),
		WithHandEvents(t.bus),
		WithHandClock(t.clock),
		WithHandSeats(seats),
		WithDisconnected(t.hasLeft),
	)
	hand.TableID = t.id

	t.logger.Debug("Starting hand", "hand", handID, "variant", variant, "dealer", t.dealer, "players", len(participants))
	result, err := hand.Run(ctx)
	t.teardown()
	if err != nil {
		return nil, err
	}
	t.hands++
	return result, nil
}

func (t *Table) applySeating() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, p := range t.seats {
		if p != nil && t.leaving[p.ID] {
			t.logger.Info("Player left", "player", p.ID, "chips", p.Chips)
			if !p.SittingOut {
				t.standings.Leave(p.ID, p.Chips)
			}
			t.seats[i] = nil
		}
	}
	clear(t.leaving)

	for _, p := range t.joins {
		seat := slices.Index(t.seats, nil)
		if seat < 0 {
			t.logger.Warn("No free seat, dropping join", "player", p.ID)
			continue
		}
		t.seats[seat] = p
		t.logger.Info("Player joined", "player", p.ID, "seat", seat, "chips", p.Chips)
	}
	t.joins = nil
}

func (t *Table) teardown() {
	var busted []string
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		p.resetForHand()
		if p.Chips == 0 && !p.SittingOut {
			p.SittingOut = true
			busted = append(busted, p.ID)
		}
	}
	t.standings.Eliminate(busted...)
	t.dealer = t.nextSeat(t.dealer)
}

func (t *Table) canPlay(seat int) bool {
	p := t.seats[seat]
	return p != nil && !p.SittingOut && p.Chips > 0
}

// nextSeat returns the next seat after from holding a player who can play.
func (t *Table) nextSeat(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if t.canPlay(seat) {
			return seat
		}
	}
	return from
}

func (t *Table) publishClosed() {
	if t.bus == nil {
		return
	}
	t.bus.Publish(Event{
		Type:     EventTableClosed,
		Time:     t.clock.Now(),
		Snapshot: t.Snapshot(),
	})
}

// Snapshot returns the table state between hands.
func (t *Table) Snapshot() Snapshot {
	s := Snapshot{TableID: t.id, Variant: t.rules.Game, BigBlind: t.rules.BigBlind}
	if p := t.seats[t.dealer]; p != nil {
		s.Dealer = p.ID
	}
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		s.Players = append(s.Players, PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       i,
			Chips:      p.Chips,
			SittingOut: p.SittingOut,
		})
	}
	return s
}
