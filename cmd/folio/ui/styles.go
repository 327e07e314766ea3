// Package ui provides the visual styling for the folio desktop and terminal.
// Colors follow a light/dark palette picked from the terminal background.
package ui

import (
	"os"
	"strconv"
	"strings"

	"termfolio/internal/terminal"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#eef1f5")
	LightForeground = lipgloss.Color("#1b2430")
	LightPrimary    = lipgloss.Color("#1b2430")
	LightAccent     = lipgloss.Color("#2e7d32") // terminal green
	LightMuted      = lipgloss.Color("#7a8594")
	LightBorder     = lipgloss.Color("#c5ccd6")
	LightWindow     = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f1419")
	DarkForeground = lipgloss.Color("#e6e6e6")
	DarkPrimary    = lipgloss.Color("#4ade80")
	DarkAccent     = lipgloss.Color("#4ade80")
	DarkMuted      = lipgloss.Color("#6b7280")
	DarkBorder     = lipgloss.Color("#374151")
	DarkWindow     = lipgloss.Color("#111827")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#22c55e")
	Notice      = lipgloss.Color("#eab308")
	Info        = lipgloss.Color("#3b82f6")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Window     lipgloss.Color
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
		Window:     LightWindow,
		IsDark:     false,
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
		Window:     DarkWindow,
		IsDark:     true,
	}
}

// DetectTheme picks dark or light from COLORFGBG, then FOLIO_DARK_MODE.
// Terminals are usually dark, so dark is the default.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if bgIdx == 7 || bgIdx >= 9 {
				return LightTheme()
			}
			return DarkTheme()
		}
	}

	switch os.Getenv("FOLIO_DARK_MODE") {
	case "0", "false":
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Desktop
	Desktop      lipgloss.Style
	Icon         lipgloss.Style
	IconSelected lipgloss.Style
	Taskbar      lipgloss.Style
	Clock        lipgloss.Style

	// Terminal window
	Window      lipgloss.Style
	WindowTitle lipgloss.Style
	Prompt      lipgloss.Style
	UserInput   lipgloss.Style
	Echo        lipgloss.Style
	Heading     lipgloss.Style
	Directory   lipgloss.Style
	AIReply     lipgloss.Style

	// Tones
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style

	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Desktop: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Icon: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(12),

		IconSelected: lipgloss.NewStyle().
			Foreground(theme.Window).
			Background(theme.Accent).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(12).
			Bold(true),

		Taskbar: lipgloss.NewStyle().
			Background(theme.Border).
			Foreground(theme.Foreground).
			Padding(0, 1),

		Clock: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Window: lipgloss.NewStyle().
			Background(theme.Window).
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		WindowTitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Echo: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Heading: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),

		Directory: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),

		AIReply: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success),

		Error: lipgloss.NewStyle().
			Foreground(Destructive),

		Notice: lipgloss.NewStyle().
			Foreground(Notice),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Tone returns the style for a block tone.
func (s Styles) Tone(t terminal.Tone) lipgloss.Style {
	switch t {
	case terminal.ToneError:
		return s.Error
	case terminal.ToneSuccess:
		return s.Success
	case terminal.ToneNotice:
		return s.Notice
	default:
		return s.Body
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 0 {
		width = 0
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
