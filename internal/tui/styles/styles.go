package styles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary = lipgloss.Color("#C8102E") // Denon red

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	// Neutral colors
	Border    lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	Text      lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	TextMuted lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	TextDim   lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Off       lipgloss.Style
	Failure   lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	build()
}

// UseTheme selects the palette: "dark", "light", or "auto" to follow the
// terminal background.
func UseTheme(theme string) {
	pick := func(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
		switch theme {
		case "dark":
			return lipgloss.Color(c.Dark)
		case "light":
			return lipgloss.Color(c.Light)
		}
		return c
	}
	Border = pick(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	Text = pick(lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"})
	TextMuted = pick(lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"})
	TextDim = pick(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	build()
}

func build() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Success)
	Paused = lipgloss.NewStyle().Foreground(Warning)
	Off = lipgloss.NewStyle().Foreground(TextDim)
	Failure = lipgloss.NewStyle().Foreground(Error)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// StateIcon returns an icon for a display state name.
func StateIcon(state string) string {
	switch state {
	case "playing":
		return Playing.Render("▶")
	case "paused":
		return Paused.Render("⏸")
	case "idle":
		return Muted.Render("⏹")
	case "off":
		return Off.Render("⏻")
	default:
		return Dim.Render("?")
	}
}

// AvailabilityIcon returns a dot colored by availability.
func AvailabilityIcon(available bool) string {
	if available {
		return Playing.Render("●")
	}
	return Failure.Render("●")
}
