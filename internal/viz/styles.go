package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sourcespace/internal/palette"
)

// styles are derived from the active theme so the HUD sits on the same
// background as the canvas.
type styles struct {
	hud       lipgloss.Style
	title     lipgloss.Style
	subtle    lipgloss.Style
	keyHint   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	graph     lipgloss.Style
}

func newStyles(t palette.Theme) styles {
	bg := lipgloss.NewStyle().Background(t.Background)
	return styles{
		hud:     bg.Padding(0, 1),
		title:   bg.Bold(true).Foreground(t.Accent),
		subtle:  bg.Foreground(lipgloss.Color("#94a3b8")),
		keyHint: bg.Italic(true).Foreground(lipgloss.Color("#64748b")),
		paused: bg.Bold(true).
			Foreground(lipgloss.Color("#ffaa00")),
		recording: bg.Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			BorderBackground(t.Background).
			Background(t.Background).
			Padding(0, 1),
		label: bg.Foreground(lipgloss.Color("#888899")).Width(12),
		value: bg.Bold(true).Foreground(t.Star),
		graph: bg.Foreground(t.Accent),
	}
}
