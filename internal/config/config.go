// Package config loads table and bot configuration from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokertable/internal/bot"
	"github.com/lox/pokertable/internal/game"
)

// Config is the complete configuration for a run.
type Config struct {
	LogLevel    string             `hcl:"log_level,optional"`
	Seed        int64              `hcl:"seed,optional"`
	Observer    *ObserverConfig    `hcl:"observer,block"`
	HandHistory *HandHistoryConfig `hcl:"hand_history,block"`
	Tables      []TableConfig      `hcl:"table,block"`
	Bots        []BotConfig        `hcl:"bot,block"`
}

// ObserverConfig enables the websocket snapshot feed.
type ObserverConfig struct {
	Address string `hcl:"address,optional"`
}

// HandHistoryConfig enables writing PHH files for every completed hand.
type HandHistoryConfig struct {
	Directory string `hcl:"directory,optional"`
}

// TableConfig defines one table.
type TableConfig struct {
	Name            string `hcl:"name,label"`
	Game            string `hcl:"game,optional"`
	SmallBlind      int    `hcl:"small_blind"`
	BigBlind        int    `hcl:"big_blind"`
	Ante            int    `hcl:"ante,optional"`
	MaxSeats        int    `hcl:"max_seats,optional"`
	MinChip         int    `hcl:"min_chip,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	HandLimit       int    `hcl:"hand_limit,optional"`
	Prizes          []int  `hcl:"prizes,optional"`
	Strict          bool   `hcl:"strict,optional"`
}

// BotConfig seats a built-in strategy at one or more tables.
type BotConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy,optional"`
	Chips    int      `hcl:"chips,optional"`
	Tables   []string `hcl:"tables,optional"`
}

const (
	defaultLogLevel = "info"
	defaultSeats    = 6
	defaultTimeout  = "10s"
	defaultStrategy = "chart"
	defaultBuyIn    = 100 // big blinds
)

// Default returns a single six-max hold'em table with a bot of every
// built-in strategy.
func Default() *Config {
	cfg := &Config{
		Tables: []TableConfig{{Name: "main", Game: string(game.Holdem), SmallBlind: 5, BigBlind: 10}},
	}
	for _, name := range bot.Names {
		cfg.Bots = append(cfg.Bots, BotConfig{Name: name, Strategy: name})
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Observer != nil && c.Observer.Address == "" {
		c.Observer.Address = "localhost:8080"
	}
	if c.HandHistory != nil && c.HandHistory.Directory == "" {
		c.HandHistory.Directory = "hands"
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Game == "" {
			t.Game = string(game.Holdem)
		}
		if t.MaxSeats == 0 {
			t.MaxSeats = defaultSeats
		}
		if t.MinChip == 0 {
			t.MinChip = 1
		}
		if t.DecisionTimeout == "" {
			t.DecisionTimeout = defaultTimeout
		}
	}

	for i := range c.Bots {
		b := &c.Bots[i]
		if b.Strategy == "" {
			b.Strategy = defaultStrategy
		}
		if len(b.Tables) == 0 {
			for _, t := range c.Tables {
				b.Tables = append(b.Tables, t.Name)
			}
		}
	}
}

// Validate checks the configuration is runnable.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if len(c.Tables) == 0 {
		return errors.New("at least one table must be configured")
	}

	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			return fmt.Errorf("table %s: defined more than once", t.Name)
		}
		seen[t.Name] = true
		if _, err := t.Rules(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		if t.HandLimit < 0 {
			return fmt.Errorf("table %s: hand_limit cannot be negative", t.Name)
		}
	}

	seated := make(map[string]int)
	for _, b := range c.Bots {
		if _, err := bot.New(b.Strategy, nil); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
		if b.Chips < 0 {
			return fmt.Errorf("bot %s: chips cannot be negative", b.Name)
		}
		for _, name := range b.Tables {
			if !seen[name] {
				return fmt.Errorf("bot %s: unknown table %s", b.Name, name)
			}
			seated[name]++
		}
	}
	for _, t := range c.Tables {
		if seated[t.Name] > t.MaxSeats {
			return fmt.Errorf("table %s: %d bots for %d seats", t.Name, seated[t.Name], t.MaxSeats)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Table returns a table configuration by name.
func (c *Config) Table(name string) (TableConfig, bool) {
	i := slices.IndexFunc(c.Tables, func(t TableConfig) bool { return t.Name == name })
	if i < 0 {
		return TableConfig{}, false
	}
	return c.Tables[i], true
}

// BotsFor returns the bots seated at a table.
func (c *Config) BotsFor(table string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		if slices.Contains(b.Tables, table) {
			bots = append(bots, b)
		}
	}
	return bots
}

// Rules converts the table configuration into validated game rules.
func (t TableConfig) Rules() (game.Rules, error) {
	variant, err := game.ParseVariant(t.Game)
	if err != nil {
		return game.Rules{}, err
	}
	timeout, err := time.ParseDuration(t.DecisionTimeout)
	if err != nil {
		return game.Rules{}, fmt.Errorf("decision_timeout: %w", err)
	}

	rules := game.Rules{
		SmallBlind:      t.SmallBlind,
		BigBlind:        t.BigBlind,
		Ante:            t.Ante,
		MaxSeats:        t.MaxSeats,
		MinChip:         t.MinChip,
		Game:            variant,
		DecisionTimeout: timeout,
		Prizes:          slices.Clone(t.Prizes),
		Strict:          t.Strict,
	}
	if err := rules.Validate(); err != nil {
		return game.Rules{}, err
	}
	return rules, nil
}

// BuyIn returns the starting stack for a bot at a table.
func (b BotConfig) BuyIn(t TableConfig) int {
	if b.Chips > 0 {
		return b.Chips
	}
	return defaultBuyIn * t.BigBlind
}
