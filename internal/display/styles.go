package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/muesli/termenv"
)

// Color modes accepted by ConfigureColor
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigureColor forces the lipgloss renderer's profile. Auto leaves
// termenv's detection alone.
func ConfigureColor(mode string) {
	switch mode {
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// TUIStyles contains all styling for the TUI
type TUIStyles struct {
	Header     lipgloss.Style
	LogPane    lipgloss.Style
	Sidebar    lipgloss.Style
	ActionPane lipgloss.Style
	HandInfo   lipgloss.Style
	Actions    lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Focused    lipgloss.Color
	Unfocused  lipgloss.Color
}

// DefaultStyles returns the table's color scheme
func DefaultStyles() TUIStyles {
	return TUIStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		LogPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		ActionPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		HandInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Focused:   lipgloss.Color("#04B575"),
		Unfocused: lipgloss.Color("#626262"),
	}
}

// FormatCards renders cards in brackets, red suits in red
func (s TUIStyles) FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, s.RedCard.Render(card.String()))
		} else {
			formatted = append(formatted, s.BlackCard.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
