package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/pokertable/internal/deck"
	"github.com/lox/pokertable/internal/display"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/game"
)

// EvalCmd evaluates hole cards against a board.
type EvalCmd struct {
	Game  string   `short:"g" default:"holdem" help:"Variant that decides the hand rules (holdem, pineapple, omaha, shortdeck)"`
	Board string   `short:"b" help:"Community cards, e.g. 'Ks Qs 7h 7d 2c'"`
	Hands []string `arg:"" help:"Hole cards per player, optionally named, e.g. 'alice=Ah 3d'"`
}

func (c *EvalCmd) Run(cli *CLI) error {
	hands, err := c.evaluate()
	if err != nil {
		return err
	}
	styles := display.StylesFor(display.NewRenderer(os.Stdout, cli.Color))
	fmt.Println(styles.Analysis(hands))
	return nil
}

func (c *EvalCmd) evaluate() ([]display.Hand, error) {
	variant, err := game.ParseVariant(c.Game)
	if err != nil {
		return nil, err
	}
	if !variant.Playable() {
		return nil, fmt.Errorf("cannot evaluate %s hands", variant)
	}

	var board []deck.Card
	if strings.TrimSpace(c.Board) != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
	}

	hands := make([]display.Hand, 0, len(c.Hands))
	for i, arg := range c.Hands {
		name, cards := fmt.Sprintf("player %d", i+1), arg
		if before, after, ok := strings.Cut(arg, "="); ok {
			name, cards = strings.TrimSpace(before), after
		}
		hole, err := deck.ParseCards(cards)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res, err := evaluator.Analyze(append(hole, board...), variant.Rule(), variant.Ranking())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		hands = append(hands, display.Hand{Name: name, Result: res})
	}
	return hands, nil
}
