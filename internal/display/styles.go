// Package display renders tables, cards and hand analysis for a terminal.
package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pokertable/internal/deck"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewRenderer creates a renderer for w. Auto detects whether w is a
// colour terminal.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Styles holds the lipgloss styles used by the display.
type Styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Box       lipgloss.Style
}

// NewStyles creates styles for the terminal behind w. Writers that are not
// terminals get plain text.
func NewStyles(w io.Writer) Styles {
	return StylesFor(NewRenderer(w, ColorAuto))
}

// StylesFor creates styles drawn by r.
func StylesFor(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Street:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Action:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Winner:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
		RedCard:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
	}
}

// Card renders one card with its suit symbol, coloured by suit.
func (s Styles) Card(c deck.Card) string {
	if c.Suit.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces.
func (s Styles) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}
