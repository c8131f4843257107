package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the browser.
type Styles struct {
	Header      lipgloss.Style
	Filter      lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Favorite    lipgloss.Style
	Stars       lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Filter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A49FA5")),
		Row: lipgloss.NewStyle().
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#EE6FF8")),
		Favorite: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")),
		Stars: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5C542")),
		Placeholder: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("#3C3C3C")),
		Status: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#626262")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4672")),
	}
}
