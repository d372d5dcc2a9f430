// Package theme holds the color palette shared by the CLI renderers.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is a set of colors used across terminal output.
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
}

// CurrentTheme is the active palette.
var CurrentTheme = Palette{
	Primary:   lipgloss.Color("#7d56f4"),
	Text:      lipgloss.Color("#ffffff"),
	TextMuted: lipgloss.Color("#808080"),
	Success:   lipgloss.Color("#04b575"),
	Warning:   lipgloss.Color("#ffb454"),
	Danger:    lipgloss.Color("#ff5f87"),
}
