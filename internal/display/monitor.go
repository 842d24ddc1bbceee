package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lox/pokertable/internal/game"
)

// Monitor prints a running commentary of table events. It implements
// game.EventSubscriber and is safe to share between tables.
type Monitor struct {
	w       io.Writer
	styles  Styles
	verbose bool

	mu sync.Mutex
}

// NewMonitor writes events to w. Verbose monitors include every action;
// otherwise only hand starts, boards and results are shown.
func NewMonitor(w io.Writer, styles Styles, verbose bool) *Monitor {
	return &Monitor{w: w, styles: styles, verbose: verbose}
}

// OnEvent renders one event.
func (m *Monitor) OnEvent(e game.Event) {
	line := m.render(e)
	if line == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = fmt.Fprintln(m.w, line)
}

func (m *Monitor) render(e game.Event) string {
	s := e.Snapshot
	switch e.Type {
	case game.EventHandStart:
		var seats []string
		for _, p := range s.Players {
			seats = append(seats, fmt.Sprintf("%s (%d)", p.ID, p.Chips))
		}
		header := m.styles.Header.Render(fmt.Sprintf("%s · %s · hand %s", s.TableID, s.Variant, s.HandID))
		return header + " " + m.styles.Muted.Render("button "+s.Dealer+": "+strings.Join(seats, ", "))

	case game.EventBlindPosted, game.EventOptionApplied:
		if !m.verbose || e.Option == nil {
			return ""
		}
		return "  " + m.styles.Action.Render(fmt.Sprintf("%s %s", e.PlayerID, e.Option))

	case game.EventStreetChange:
		name := strings.ToUpper(s.Street.String()[:1]) + s.Street.String()[1:]
		return "  " + m.styles.Street.Render(name+":") + " " + m.styles.Cards(s.Board)

	case game.EventPotResolved:
		if e.Pot == nil {
			return ""
		}
		var lines []string
		for _, w := range e.Pot.Winners {
			text := fmt.Sprintf("%s wins %d", w.PlayerID, w.Amount)
			if w.Category != "" {
				text += " with " + w.Category
			}
			line := "  " + m.styles.Winner.Render(text)
			if len(w.Cards) > 0 {
				line += " " + m.styles.Cards(w.Cards)
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")

	case game.EventTableClosed:
		return m.styles.Warning.Render(fmt.Sprintf("Table %s closed", s.TableID))
	}
	return ""
}
