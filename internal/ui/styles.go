package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorOrange  = lipgloss.Color("#FF9500")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PlayingDotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	PausedDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	BeatStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	ChipActiveStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)
)

// Sign styles. A sign starts from SignStyle (or SignInactiveStyle off the
// active line) and gains attributes from its markers.
var (
	SignStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	SignInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	TwoHandedMarkStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	DirectionMarkStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	RaisedMarkStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	RoleShiftMarkStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta)
)
