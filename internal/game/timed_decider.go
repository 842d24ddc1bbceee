package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/deck"
)

// TimedDecider bounds every decision of an inner Decider. When the deadline
// passes the inner call is cancelled and the default option is returned;
// an answer arriving later is dropped.
type TimedDecider struct {
	inner   Decider
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger
}

// NewTimedDecider wraps inner with a per-decision timeout. A zero timeout
// waits forever.
func NewTimedDecider(inner Decider, clock quartz.Clock, timeout time.Duration, logger *log.Logger) *TimedDecider {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &TimedDecider{
		inner:   inner,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("decider"),
	}
}

// DesiredGameType asks the inner decider for the dealer's choice, falling
// back to Hold'em when it does not answer in time.
func (d *TimedDecider) DesiredGameType(ctx context.Context, dealerID string) Variant {
	v, err := await(ctx, d.clock, d.timeout, func(ctx context.Context) (Variant, error) {
		return d.inner.DesiredGameType(ctx, dealerID), nil
	})
	if err != nil {
		d.logger.Warn("Dealer did not choose a game in time", "dealer", dealerID, "error", err)
		return Holdem
	}
	return v
}

// DesiredOption asks the inner decider for an option.
func (d *TimedDecider) DesiredOption(ctx context.Context, req DecisionRequest) (Option, error) {
	req.Timeout = d.timeout
	req.Snapshot.TimeLeft = d.timeout
	opt, err := await(ctx, d.clock, d.timeout, func(ctx context.Context) (Option, error) {
		return d.inner.DesiredOption(ctx, req)
	})
	if err != nil {
		return DefaultOption(req.Legal), err
	}
	return opt, nil
}

// Discard forwards to the inner decider when it chooses discards.
func (d *TimedDecider) Discard(ctx context.Context, playerID string, hole []deck.Card) int {
	discarder, ok := d.inner.(Discarder)
	if !ok {
		return LowestCard(hole)
	}
	idx, err := await(ctx, d.clock, d.timeout, func(ctx context.Context) (int, error) {
		return discarder.Discard(ctx, playerID, hole), nil
	})
	if err != nil || idx < 0 || idx >= len(hole) {
		return LowestCard(hole)
	}
	return idx
}

func await[T any](ctx context.Context, clock quartz.Clock, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	// The timer is armed before fn starts so fn always runs under it.
	var expired chan struct{}
	if timeout > 0 {
		expired = make(chan struct{})
		timer := clock.AfterFunc(timeout, func() {
			close(expired)
		})
		defer timer.Stop()
	}

	// Buffered so a late answer never blocks the abandoned goroutine.
	results := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		results <- result{v, err}
	}()

	var zero T
	select {
	case r := <-results:
		return r.value, r.err
	case <-expired:
		return zero, ErrDecisionTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
