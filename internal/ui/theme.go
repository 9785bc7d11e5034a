package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the picker colours as lipgloss colour strings: ANSI numbers
// ("4", "236") or hex ("#7aa2f7").
type Theme struct {
	Border   string `toml:"border"`
	Selected string `toml:"selected"`
	Match    string `toml:"match"`
	Prompt   string `toml:"prompt"`
}

var DefaultTheme = Theme{
	Border:   "8",
	Selected: "236",
	Match:    "4",
	Prompt:   "5",
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Plain         lipgloss.Style
	Border        lipgloss.Style
	Selected      lipgloss.Style
	Match         lipgloss.Style
	SelectedMatch lipgloss.Style
	Prompt        lipgloss.Style
	Status        lipgloss.Style
}

// NewStyles builds styles on r, whose output decides the colour profile.
func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	selected := r.NewStyle().Background(lipgloss.Color(t.Selected)).Bold(true)
	match := r.NewStyle().Foreground(lipgloss.Color(t.Match)).Bold(true)
	return Styles{
		Plain:         r.NewStyle(),
		Border:        r.NewStyle().Foreground(lipgloss.Color(t.Border)),
		Selected:      selected,
		Match:         match,
		SelectedMatch: match.Inherit(selected),
		Prompt:        r.NewStyle().Foreground(lipgloss.Color(t.Prompt)).Bold(true),
		Status:        r.NewStyle().Faint(true),
	}
}
