package palette

import "github.com/charmbracelet/lipgloss"

// Palette is an ordered, non-empty list of particle colours.
type Palette []lipgloss.Color

// Theme defines the visual identity selected by a theme key.
type Theme struct {
	Key         string
	Name        string
	Description string
	Emoji       string
	Background  lipgloss.Color
	Star        lipgloss.Color
	Accent      lipgloss.Color
	Colors      Palette
}

// DefaultKey is the theme used for unrecognised keys.
const DefaultKey = "novaverse"

// Available themes
var (
	ThemeNovaVerse = Theme{
		Key:         "novaverse",
		Name:        "NovaVerse",
		Description: "Artistic & Colorful Galaxy",
		Emoji:       "🌈",
		Background:  lipgloss.Color("#12061f"),
		Star:        lipgloss.Color("#ffffff"),
		Accent:      lipgloss.Color("#f9a8d4"), // pink-300
		Colors: Palette{
			lipgloss.Color("#9333ea"), // purple-600
			lipgloss.Color("#ec4899"), // pink-500
			lipgloss.Color("#fb923c"), // orange-400
			lipgloss.Color("#3b82f6"), // blue-500
			lipgloss.Color("#f9a8d4"), // pink-300
		},
	}

	ThemeEchoVerse = Theme{
		Key:         "echoverse",
		Name:        "EchoVerse",
		Description: "Community-Focused Cosmos",
		Emoji:       "🔮",
		Background:  lipgloss.Color("#06121f"),
		Star:        lipgloss.Color("#e0f7ff"),
		Accent:      lipgloss.Color("#67e8f9"), // cyan-300
		Colors: Palette{
			lipgloss.Color("#22d3ee"), // cyan-400
			lipgloss.Color("#3b82f6"), // blue-500
			lipgloss.Color("#9333ea"), // purple-600
			lipgloss.Color("#4ade80"), // green-400
		},
	}

	ThemeLogiVerse = Theme{
		Key:         "logiverse",
		Name:        "LogiVerse",
		Description: "Data-Driven Universe",
		Emoji:       "⚙️",
		Background:  lipgloss.Color("#0b1120"),
		Star:        lipgloss.Color("#dbeafe"),
		Accent:      lipgloss.Color("#93c5fd"), // blue-300
		Colors: Palette{
			lipgloss.Color("#9ca3af"), // gray-400
			lipgloss.Color("#60a5fa"), // blue-400
			lipgloss.Color("#67e8f9"), // cyan-300
			lipgloss.Color("#64748b"), // slate-500
		},
	}

	themes = []Theme{
		ThemeNovaVerse,
		ThemeEchoVerse,
		ThemeLogiVerse,
	}
)
