package tui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortsim/internal/export"
)

// Theme defines the colour scheme for the TUI and exported images.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Dim      lipgloss.Color
	Bar      lipgloss.Color
	Compared lipgloss.Color
	Swapped  lipgloss.Color
	Written  lipgloss.Color
	Sorted   lipgloss.Color
	Error    lipgloss.Color
	Backdrop lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#00f2ff"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#94a3b8"),
		Dim:      lipgloss.Color("#475569"),
		Bar:      lipgloss.Color("#0ea5e9"),
		Compared: lipgloss.Color("#facc15"),
		Swapped:  lipgloss.Color("#ef4444"),
		Written:  lipgloss.Color("#c084fc"),
		Sorted:   lipgloss.Color("#4ade80"),
		Error:    lipgloss.Color("#ff4444"),
		Backdrop: lipgloss.Color("#0f172a"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Primary:  lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Dim:      lipgloss.Color("#444444"),
		Bar:      lipgloss.Color("#00ffff"),
		Compared: lipgloss.Color("#ffff00"),
		Swapped:  lipgloss.Color("#ff0055"),
		Written:  lipgloss.Color("#ff8800"),
		Sorted:   lipgloss.Color("#00ff00"),
		Error:    lipgloss.Color("#ff0000"),
		Backdrop: lipgloss.Color("#0a0a0a"),
	}

	ThemeRetro = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#00aa00"),
		Dim:      lipgloss.Color("#005500"),
		Bar:      lipgloss.Color("#00cc00"),
		Compared: lipgloss.Color("#ffff00"),
		Swapped:  lipgloss.Color("#ff5500"),
		Written:  lipgloss.Color("#88ff88"),
		Sorted:   lipgloss.Color("#ccffcc"),
		Error:    lipgloss.Color("#ff0000"),
		Backdrop: lipgloss.Color("#001100"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Dim:      lipgloss.Color("#444444"),
		Bar:      lipgloss.Color("#cccccc"),
		Compared: lipgloss.Color("#0088ff"),
		Swapped:  lipgloss.Color("#ff0000"),
		Written:  lipgloss.Color("#ffaa00"),
		Sorted:   lipgloss.Color("#00ff00"),
		Error:    lipgloss.Color("#ff0000"),
		Backdrop: lipgloss.Color("#000000"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#b08cb0"),
		Dim:      lipgloss.Color("#8b6b8c"),
		Bar:      lipgloss.Color("#ff9ff3"),
		Compared: lipgloss.Color("#feca57"),
		Swapped:  lipgloss.Color("#ff4757"),
		Written:  lipgloss.Color("#48dbfb"),
		Sorted:   lipgloss.Color("#5fd068"),
		Error:    lipgloss.Color("#ff4757"),
		Backdrop: lipgloss.Color("#2d1b2e"),
	}

	Themes = []Theme{
		ThemeOcean,
		ThemeCyberpunk,
		ThemeRetro,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ExportStyle maps the theme onto the image renderer's colours.
func (t Theme) ExportStyle() export.Style {
	s := export.DefaultStyle()
	s.Background = rgba(t.Backdrop, s.Background)
	s.Text = rgba(t.Text, s.Text)
	s.Bar = rgba(t.Bar, s.Bar)
	s.Compared = rgba(t.Compared, s.Compared)
	s.Swapped = rgba(t.Swapped, s.Swapped)
	s.Written = rgba(t.Written, s.Written)
	s.Sorted = rgba(t.Sorted, s.Sorted)
	return s
}

func rgba(c lipgloss.Color, fallback color.RGBA) color.RGBA {
	h := strings.TrimPrefix(string(c), "#")
	if len(h) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
