package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Form styles.
var (
	fieldLabelStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(colorDim)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	fieldFocusedStyle = lipgloss.NewStyle().
				Foreground(colorCyan).
				Bold(true)

	presetLabelStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// State badge styles.
var (
	badgeIdleStyle    = lipgloss.NewStyle().Foreground(colorDim)
	badgeLoadingStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	badgeModeStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Results table styles.
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorDim).
				BorderBottom(true)

	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	emptyTableStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 2)
)
