package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains all styling for the console and TUI
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Info      lipgloss.Style
	Action    lipgloss.Style
	ToAct     lipgloss.Style
	Inactive  lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Pane      lipgloss.Style
	Border    lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. Without color everything is
// rendered with the ASCII profile.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles builds the palette on r
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Section: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		ToAct: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Inactive: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Faint(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Pane: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
