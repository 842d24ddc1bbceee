package display

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pokertable/internal/evaluator"
	"github.com/lox/pokertable/internal/game"
	"github.com/lox/pokertable/internal/statistics"
)

// Hand is one player's evaluated holding.
type Hand struct {
	Name   string
	Result evaluator.Result
}

// Analysis renders evaluated hands best first, with an explanation of
// why the winner beats the runner up.
func (s Styles) Analysis(hands []Hand) string {
	if len(hands) == 0 {
		return ""
	}
	sorted := slices.Clone(hands)
	slices.SortStableFunc(sorted, func(a, b Hand) int {
		return evaluator.Compare(b.Result, a.Result)
	})

	var b strings.Builder
	for i, h := range sorted {
		name := h.Name
		if i == 0 || evaluator.Compare(h.Result, sorted[0].Result) == 0 {
			name = s.Winner.Render(name)
		}
		fmt.Fprintf(&b, "%d. %s  %s  %s\n", i+1, name, h.Result.Category, s.Cards(h.Result.Cards))
	}
	if len(sorted) > 1 {
		b.WriteString(s.Muted.Render(evaluator.Explain(sorted[0].Result, sorted[1].Result)))
	}
	return s.Box.Render(strings.TrimRight(b.String(), "\n"))
}

// Standings renders final places.
func (s Styles) Standings(table string, places []game.Place) string {
	rows := []string{s.Header.Render("Standings " + table)}
	for _, p := range places {
		row := fmt.Sprintf("%d. %-12s %6d chips", p.Position, p.PlayerID, p.Chips)
		if p.Prize > 0 {
			row += s.Winner.Render(fmt.Sprintf("  prize %d", p.Prize))
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// WinRates renders per-player results in big blinds per hand with a 95%
// confidence interval.
func (s Styles) WinRates(rows []statistics.Row) string {
	out := []string{s.Header.Render("Win rates")}
	for _, r := range rows {
		rate := fmt.Sprintf("%+.2f bb/hand", r.BBPerHand)
		if r.BBPerHand > 0 {
			rate = s.Winner.Render(rate)
		}
		out = append(out, fmt.Sprintf("%-12s %5d hands  %s  %s  showdown %d / other %d",
			r.PlayerID, r.Hands, rate,
			s.Muted.Render(fmt.Sprintf("[%+.2f, %+.2f]", r.Low, r.High)),
			r.ShowdownWins, r.NonShowdownWins))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
