package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stallingDecider blocks every call until released.
type stallingDecider struct {
	called  chan struct{}
	release chan struct{}
	answer  Option
}

func newStalling(answer Option) *stallingDecider {
	return &stallingDecider{called: make(chan struct{}, 8), release: make(chan struct{}), answer: answer}
}

func (s *stallingDecider) DesiredGameType(context.Context, string) Variant {
	s.called <- struct{}{}
	<-s.release
	return Omaha
}

func (s *stallingDecider) DesiredOption(ctx context.Context, _ DecisionRequest) (Option, error) {
	s.called <- struct{}{}
	select {
	case <-s.release:
		return s.answer, nil
	case <-ctx.Done():
		return Option{}, ctx.Err()
	}
}

func (s *stallingDecider) Discard(context.Context, string, []deck.Card) int {
	s.called <- struct{}{}
	<-s.release
	return 0
}

var checkOrFold = []LegalOption{{Type: Check}, {Type: Bet, Min: 10, Max: 100, Total: 10}}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTimedDeciderPassesAnswer(t *testing.T) {
	ctx := testCtx(t)
	inner := newStalling(Option{Type: Bet, Amount: 20})
	close(inner.release)
	d := NewTimedDecider(inner, quartz.NewMock(t), time.Second, log.New(io.Discard))

	opt, err := d.DesiredOption(ctx, DecisionRequest{PlayerID: "a", Legal: checkOrFold})
	require.NoError(t, err)
	assert.Equal(t, Option{Type: Bet, Amount: 20}, opt)
}

func TestTimedDeciderTimeout(t *testing.T) {
	ctx := testCtx(t)
	mock := quartz.NewMock(t)
	inner := newStalling(Option{Type: Bet, Amount: 20})
	d := NewTimedDecider(inner, mock, time.Second, log.New(io.Discard))

	type answer struct {
		opt Option
		err error
	}
	done := make(chan answer, 1)
	go func() {
		opt, err := d.DesiredOption(ctx, DecisionRequest{PlayerID: "a", Legal: checkOrFold})
		done <- answer{opt, err}
	}()

	<-inner.called
	mock.Advance(time.Second).MustWait(ctx)

	got := <-done
	require.ErrorIs(t, got.err, ErrDecisionTimeout)
	assert.Equal(t, Option{Type: Check}, got.opt)

	// A late answer is dropped.
	close(inner.release)
	select {
	case extra := <-done:
		t.Fatalf("unexpected second answer %v", extra)
	default:
	}
}

func TestTimedDeciderTimeoutFolds(t *testing.T) {
	ctx := testCtx(t)
	mock := quartz.NewMock(t)
	inner := newStalling(Option{})
	d := NewTimedDecider(inner, mock, time.Second, log.New(io.Discard))

	done := make(chan Option, 1)
	go func() {
		opt, _ := d.DesiredOption(ctx, DecisionRequest{PlayerID: "a", Legal: []LegalOption{{Type: Fold}, {Type: Call, Min: 10, Max: 10}}})
		done <- opt
	}()

	<-inner.called
	mock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, Option{Type: Fold}, <-done)
}

func TestTimedDeciderGameTypeFallsBack(t *testing.T) {
	ctx := testCtx(t)
	mock := quartz.NewMock(t)
	inner := newStalling(Option{})
	d := NewTimedDecider(inner, mock, time.Second, log.New(io.Discard))

	done := make(chan Variant, 1)
	go func() { done <- d.DesiredGameType(ctx, "a") }()

	<-inner.called
	mock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, Holdem, <-done)
	close(inner.release)
}

func TestTimedDeciderDiscard(t *testing.T) {
	ctx := testCtx(t)
	hole := deck.MustParseCards("Ah 2c Kd")

	inner := newStalling(Option{})
	close(inner.release)
	d := NewTimedDecider(inner, quartz.NewMock(t), time.Second, log.New(io.Discard))
	assert.Equal(t, 0, d.Discard(ctx, "a", hole))

	plain := NewTimedDecider(newScripted(), quartz.NewMock(t), time.Second, log.New(io.Discard))
	assert.Equal(t, 1, plain.Discard(ctx, "a", hole))
}

func TestTimedDeciderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testCtx(t))
	inner := newStalling(Option{})
	d := NewTimedDecider(inner, quartz.NewMock(t), 0, log.New(io.Discard))

	done := make(chan error, 1)
	go func() {
		_, err := d.DesiredOption(ctx, DecisionRequest{PlayerID: "a", Legal: checkOrFold})
		done <- err
	}()

	<-inner.called
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
