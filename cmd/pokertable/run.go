package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/config"
	"github.com/lox/pokertable/internal/display"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/phh"
	"github.com/lox/pokertable/internal/randutil"
	"github.com/lox/pokertable/internal/server"
	"github.com/lox/pokertable/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// RunCmd plays every configured table until it finishes or is interrupted.
type RunCmd struct {
	Config   string `short:"c" default:"pokertable.hcl" help:"HCL configuration file"`
	Debug    bool   `help:"Enable debug logging"`
	Seed     *int64 `help:"Deterministic seed, overrides the config"`
	Hands    int    `help:"Hand limit per table, overrides the config"`
	Observer string `help:"Serve websocket observers on this address, overrides the config"`
	History  string `help:"Write PHH hand histories to this directory, overrides the config"`
	Quiet    bool   `short:"q" help:"Do not print table commentary"`
	Verbose  bool   `help:"Print every action"`
	Stats    bool   `help:"Print per-player win rates when the tables finish"`
}

func (c *RunCmd) Run(cli *CLI) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.override(cfg)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           cfg.Level(),
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting tables", "tables", len(cfg.Tables), "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := game.NewEventBus()
	styles := display.StylesFor(display.NewRenderer(os.Stdout, cli.Color))
	if !c.Quiet {
		bus.Subscribe(display.NewMonitor(os.Stdout, styles, c.Verbose))
	}

	stats := statistics.NewCollector()
	bus.Subscribe(stats)

	var recorder *phh.Recorder
	if cfg.HandHistory != nil {
		recorder, err = phh.NewRecorder(cfg.HandHistory.Directory, logger)
		if err != nil {
			return err
		}
		bus.Subscribe(recorder)
		logger.Info("Recording hand histories", "dir", cfg.HandHistory.Directory)
	}

	observerCtx, stopObserver := context.WithCancel(ctx)
	defer stopObserver()
	observers, observerCtx := errgroup.WithContext(observerCtx)
	if cfg.Observer != nil {
		srv := server.NewServer(cfg.Observer.Address, logger)
		bus.Subscribe(srv)
		observers.Go(func() error { return srv.Run(observerCtx) })
	}

	tables := make([]*game.Table, 0, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		t, err := newTable(cfg, tc, seed, bus, logger)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tables {
		g.Go(func() error { return t.Run(gctx) })
	}
	err = g.Wait()
	stopObserver()
	if oerr := observers.Wait(); oerr != nil && err == nil {
		err = oerr
	}

	for _, t := range tables {
		fmt.Println(styles.Standings(t.ID(), t.Standings()))
	}
	if c.Stats {
		fmt.Println(styles.WinRates(stats.Summary()))
	}
	if recorder != nil {
		ok, failed := recorder.Written()
		logger.Info("Hand histories written", "hands", ok, "failed", failed)
	}
	return err
}

func (c *RunCmd) override(cfg *config.Config) {
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if c.Hands > 0 {
		for i := range cfg.Tables {
			cfg.Tables[i].HandLimit = c.Hands
		}
	}
	if c.Observer != "" {
		cfg.Observer = &config.ObserverConfig{Address: c.Observer}
	}
	if c.History != "" {
		cfg.HandHistory = &config.HandHistoryConfig{Directory: c.History}
	}
}

// newTable builds a table and seats its bots. The table's deck and bots
// draw from streams derived from seed and the table name.
func newTable(cfg *config.Config, tc config.TableConfig, seed int64, bus game.EventBus, logger *log.Logger) (*game.Table, error) {
	rules, err := tc.Rules()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", tc.Name, err)
	}

	tableLogger := logger.With("table", tc.Name)
	botRng := randutil.Derive(seed, tc.Name+"/bots")
	roster := bot.NewRoster(botRng, tableLogger)
	clock := quartz.NewReal()
	decider := game.NewTimedDecider(roster, clock, rules.DecisionTimeout, tableLogger)

	t, err := game.NewTable(tc.Name, rules, decider,
		game.WithLogger(tableLogger),
		game.WithClock(clock),
		game.WithRand(randutil.Derive(seed, tc.Name+"/deck")),
		game.WithEventBus(bus),
		game.WithHandLimit(tc.HandLimit),
	)
	if err != nil {
		return nil, err
	}

	for _, b := range cfg.BotsFor(tc.Name) {
		s, err := bot.New(b.Strategy, botRng)
		if err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		roster.Add(b.Name, s)
		if err := t.Join(game.NewPlayer(b.Name, b.Strategy, b.BuyIn(tc))); err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}
	return t, nil
}
