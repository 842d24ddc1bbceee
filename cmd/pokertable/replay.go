package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/pokertable/internal/display"
	"github.com/lox/pokertable/internal/phh"
)

// ReplayCmd prints a hand history file written by the recorder.
type ReplayCmd struct {
	File string `arg:"" type:"existingfile" help:"Path to a .phh file"`
}

func (c *ReplayCmd) Run(cli *CLI) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	hand, err := phh.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}

	styles := display.StylesFor(display.NewRenderer(os.Stdout, cli.Color))
	fmt.Println(styles.Header.Render(fmt.Sprintf("%s · %s · hand %s", hand.Table, hand.Variant, hand.HandID)))
	fmt.Print(replay(hand, styles))
	return nil
}

// replay renders the action list with player names and stack changes.
func replay(hand *phh.HandHistory, styles display.Styles) string {
	var b strings.Builder
	name := func(token string) string {
		var n int
		if _, err := fmt.Sscanf(token, "p%d", &n); err == nil && n >= 1 && n <= len(hand.Players) {
			return hand.Players[n-1]
		}
		return token
	}

	for _, action := range hand.Actions {
		fields := strings.Fields(action)
		if len(fields) < 2 {
			continue
		}
		if fields[0] == "d" {
			switch fields[1] {
			case "db":
				fmt.Fprintf(&b, "%s %s\n", styles.Street.Render("board"), strings.Join(fields[2:], " "))
			case "dh":
				if len(fields) == 4 {
					fmt.Fprintf(&b, "%s %s\n", styles.Muted.Render(name(fields[2])+" dealt"), fields[3])
				}
			}
			continue
		}
		who := name(fields[0])
		switch fields[1] {
		case "f":
			fmt.Fprintf(&b, "  %s folds\n", who)
		case "cc":
			fmt.Fprintf(&b, "  %s checks or calls\n", who)
		case "cbr":
			fmt.Fprintf(&b, "  %s bets to %s\n", who, strings.Join(fields[2:], " "))
		case "sd":
			fmt.Fprintf(&b, "  %s discards %s\n", who, strings.Join(fields[2:], " "))
		case "sm":
			fmt.Fprintf(&b, "  %s shows %s\n", who, strings.Join(fields[2:], " "))
		}
	}

	for i, p := range hand.Players {
		if i >= len(hand.StartingStacks) || i >= len(hand.FinishingStacks) {
			break
		}
		delta := hand.FinishingStacks[i] - hand.StartingStacks[i]
		line := fmt.Sprintf("%s %+d", p, delta)
		if delta > 0 {
			line = styles.Winner.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	return b.String()
}
