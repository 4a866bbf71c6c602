// Package ui provides the visual styling for the numfacts screen.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#1b2433")
	LightPrimary    = lipgloss.Color("#2f4a7a")
	LightAccent     = lipgloss.Color("#e0902f")
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#d5dae1")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141b26")
	DarkForeground = lipgloss.Color("#eef0f3")
	DarkPrimary    = lipgloss.Color("#f0a85a")
	DarkAccent     = lipgloss.Color("#6f93d1")
	DarkMuted      = lipgloss.Color("#6b7588")
	DarkBorder     = lipgloss.Color("#2c3649")
	DarkCard       = lipgloss.Color("#1c2533")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#7cb342")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName maps a configured theme name to a Theme.
// "auto" and unknown names fall back to DetectTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses from the terminal environment, defaulting to light.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; low background indexes are dark.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) >= 2 {
			if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("NUMFACTS_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Label          lipgloss.Style
	Option         lipgloss.Style
	SelectedOption lipgloss.Style
	Fact           lipgloss.Style

	Overlay    lipgloss.Style
	ErrorPanel lipgloss.Style
	ErrorTitle lipgloss.Style
	Button     lipgloss.Style
	Spinner    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Option: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		SelectedOption: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Fact: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Overlay: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center),

		ErrorPanel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Destructive).
			Align(lipgloss.Center),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Button: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 3).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
